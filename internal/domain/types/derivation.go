package types

// DerivationInput is the authentication artifact a Keypair is derived from.
// It is either a SignatureInput or a ClaimsInput.
type DerivationInput interface {
	derivationInput()
}

// SignatureInput carries the raw wallet signature over the fixed derivation message.
type SignatureInput struct {
	Signature []byte
}

// ClaimsInput carries the stable federated identity claims plus the
// provider-issued per-user salt.
type ClaimsInput struct {
	Subject  string
	Issuer   string
	Audience string
	Salt     string
}

func (SignatureInput) derivationInput() {}
func (ClaimsInput) derivationInput()    {}
