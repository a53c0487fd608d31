package domain

import (
	interfaces "suichat/internal/domain/interfaces"
	types "suichat/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	Address          = types.Address
	RoomID           = types.RoomID
	MessageID        = types.MessageID
	Fingerprint      = types.Fingerprint
	AuthMethod       = types.AuthMethod
	X25519Public     = types.X25519Public
	X25519Private    = types.X25519Private
	Ed25519Public    = types.Ed25519Public
	Ed25519Private   = types.Ed25519Private
	Keypair          = types.Keypair
	RoomKey          = types.RoomKey
	WrappedKeyRecord = types.WrappedKeyRecord
	DerivationInput  = types.DerivationInput
	SignatureInput   = types.SignatureInput
	ClaimsInput      = types.ClaimsInput
	Room             = types.Room
	EncryptedMessage = types.EncryptedMessage
	DisplayMessage   = types.DisplayMessage
	SaltResponse     = types.SaltResponse
	IDTokenClaims    = types.IDTokenClaims
	AccountProfile   = types.AccountProfile
)

const (
	AuthWallet = types.AuthWallet
	AuthClaims = types.AuthClaims
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	WalletSigner    = interfaces.WalletSigner
	SaltProvider    = interfaces.SaltProvider
	KeySource       = interfaces.KeySource
	LedgerReader    = interfaces.LedgerReader
	LedgerWriter    = interfaces.LedgerWriter
	LedgerClient    = interfaces.LedgerClient
	AccountStore    = interfaces.AccountStore
	RoomKeyStore    = interfaces.RoomKeyStore
	WalletStore     = interfaces.WalletStore
	IdentityService = interfaces.IdentityService
	RoomService     = interfaces.RoomService
	InviteService   = interfaces.InviteService
	MessageService  = interfaces.MessageService
)
