package validators

import (
	"context"
	"fmt"
	"regexp"

	"github.com/MKhiriev/invisible-wallet/internal/keypair"
	"github.com/MKhiriev/invisible-wallet/models"
	"github.com/go-playground/validator/v10"
	"github.com/nbutton23/zxcvbn-go"
	"github.com/shopspring/decimal"
)

// Field name constants used to restrict validation to a subset of fields.
const (
	// FieldEmail targets the email of the wallet owner.
	FieldEmail = "email"

	// FieldPassphrase targets passphrase presence.
	FieldPassphrase = "passphrase"

	// FieldPassphraseStrength targets the zxcvbn score of a new passphrase.
	FieldPassphraseStrength = "passphrase_strength"

	// FieldPlatformID targets the integrating platform id.
	FieldPlatformID = "platform_id"

	// FieldNetwork targets the ledger network.
	FieldNetwork = "network"

	// FieldWalletID targets the wallet identifier of sign and convert requests.
	FieldWalletID = "wallet_id"

	// FieldPayload targets the opaque transaction payload.
	FieldPayload = "transaction_payload"

	// FieldAssets targets the source and destination assets of a conversion.
	FieldAssets = "assets"

	// FieldAmounts targets the source amount and the optional destination minimum.
	FieldAmounts = "amounts"

	// FieldDestination targets the optional destination account.
	FieldDestination = "destination"

	// FieldMemo targets the optional text memo.
	FieldMemo = "memo"
)

const (
	maxAmountDigits = 7
	maxMemoLength   = 28
)

var assetCodePattern = regexp.MustCompile(`^[a-zA-Z0-9]{1,12}$`)

// WalletValidator implements [Validator] for wallet and conversion requests.
// Tag based checks are delegated to go-playground/validator, passphrase
// strength to zxcvbn.
type WalletValidator struct {
	validate           *validator.Validate
	minPassphraseScore int
}

// NewWalletValidator constructs a [WalletValidator]. minPassphraseScore is
// the lowest accepted zxcvbn score of a new passphrase; zero disables the check.
func NewWalletValidator(minPassphraseScore int) Validator {
	return &WalletValidator{
		validate:           validator.New(validator.WithRequiredStructEnabled()),
		minPassphraseScore: minPassphraseScore,
	}
}

// Validate dispatches validation to the type-specific method matching obj.
func (v *WalletValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.CreateWalletRequest:
		return v.validateCreateWallet(ctx, value, fields...)
	case *models.CreateWalletRequest:
		return v.validateCreateWallet(ctx, *value, fields...)

	case models.RecoverWalletRequest:
		return v.validateRecoverWallet(ctx, value, fields...)
	case *models.RecoverWalletRequest:
		return v.validateRecoverWallet(ctx, *value, fields...)

	case models.SignTransactionRequest:
		return v.validateSignTransaction(ctx, value, fields...)
	case *models.SignTransactionRequest:
		return v.validateSignTransaction(ctx, *value, fields...)

	case models.ConversionRequest:
		return v.validateConversion(ctx, value, fields...)
	case *models.ConversionRequest:
		return v.validateConversion(ctx, *value, fields...)

	case models.WalletConversionRequest:
		return v.validateWalletConversion(ctx, value, fields...)
	case *models.WalletConversionRequest:
		return v.validateWalletConversion(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *WalletValidator) validateCreateWallet(ctx context.Context, request models.CreateWalletRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEmail, FieldPassphrase, FieldPlatformID, FieldNetwork, FieldPassphraseStrength}
	}

	for _, f := range fields {
		var err error
		switch f {
		case FieldEmail:
			err = v.checkEmail(request.Email)
		case FieldPassphrase:
			err = checkRequired(request.Passphrase, ErrEmptyPassphrase)
		case FieldPassphraseStrength:
			err = v.checkPassphraseStrength(request.Passphrase, request.Email)
		case FieldPlatformID:
			err = checkRequired(request.PlatformID, ErrEmptyPlatformID)
		case FieldNetwork:
			err = checkNetwork(request.Network)
		default:
			return ErrUnknownField
		}
		if err != nil {
			return err
		}
	}

	return nil
}

func (v *WalletValidator) validateRecoverWallet(ctx context.Context, request models.RecoverWalletRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEmail, FieldPassphrase, FieldPlatformID, FieldNetwork}
	}

	for _, f := range fields {
		var err error
		switch f {
		case FieldEmail:
			err = v.checkEmail(request.Email)
		case FieldPassphrase:
			err = checkRequired(request.Passphrase, ErrEmptyPassphrase)
		case FieldPlatformID:
			err = checkRequired(request.PlatformID, ErrEmptyPlatformID)
		case FieldNetwork:
			err = checkNetwork(request.Network)
		default:
			return ErrUnknownField
		}
		if err != nil {
			return err
		}
	}

	return nil
}

func (v *WalletValidator) validateSignTransaction(ctx context.Context, request models.SignTransactionRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldWalletID, FieldEmail, FieldPassphrase, FieldPlatformID, FieldPayload}
	}

	for _, f := range fields {
		var err error
		switch f {
		case FieldWalletID:
			err = checkRequired(request.WalletID, ErrEmptyWalletID)
		case FieldEmail:
			// only presence: a malformed email simply never matches a wallet
			err = checkRequired(request.Email, ErrInvalidEmail)
		case FieldPassphrase:
			err = checkRequired(request.Passphrase, ErrEmptyPassphrase)
		case FieldPlatformID:
			err = checkRequired(request.PlatformID, ErrEmptyPlatformID)
		case FieldPayload:
			err = checkRequired(request.TransactionPayload, ErrEmptyPayload)
		default:
			return ErrUnknownField
		}
		if err != nil {
			return err
		}
	}

	return nil
}

func (v *WalletValidator) validateConversion(ctx context.Context, request models.ConversionRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldAssets, FieldAmounts, FieldDestination, FieldMemo}
	}

	for _, f := range fields {
		var err error
		switch f {
		case FieldAssets:
			err = checkAssets(request.SourceAsset, request.DestinationAsset)
		case FieldAmounts:
			err = checkAmounts(request.SourceAmount, request.DestinationMin)
		case FieldDestination:
			if request.DestinationAccount != "" && !keypair.IsValidAddress(request.DestinationAccount) {
				err = ErrInvalidDestination
			}
		case FieldMemo:
			if len(request.Memo) > maxMemoLength {
				err = ErrMemoTooLong
			}
		default:
			return ErrUnknownField
		}
		if err != nil {
			return err
		}
	}

	return nil
}

func (v *WalletValidator) validateWalletConversion(ctx context.Context, request models.WalletConversionRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldWalletID, FieldEmail, FieldPassphrase, FieldPlatformID, FieldAssets, FieldAmounts, FieldDestination, FieldMemo}
	}

	for _, f := range fields {
		var err error
		switch f {
		case FieldWalletID:
			err = checkRequired(request.WalletID, ErrEmptyWalletID)
		case FieldEmail:
			err = checkRequired(request.Email, ErrInvalidEmail)
		case FieldPassphrase:
			err = checkRequired(request.Passphrase, ErrEmptyPassphrase)
		case FieldPlatformID:
			err = checkRequired(request.PlatformID, ErrEmptyPlatformID)
		case FieldAssets, FieldAmounts, FieldDestination, FieldMemo:
			err = v.validateConversion(ctx, request.ConversionRequest, f)
		default:
			return ErrUnknownField
		}
		if err != nil {
			return err
		}
	}

	return nil
}

func (v *WalletValidator) checkEmail(email string) error {
	if err := v.validate.Var(email, "required,email"); err != nil {
		return ErrInvalidEmail
	}
	return nil
}

func (v *WalletValidator) checkPassphraseStrength(passphrase, email string) error {
	if v.minPassphraseScore <= 0 || passphrase == "" {
		return nil
	}

	score := zxcvbn.PasswordStrength(passphrase, []string{email}).Score
	if score < v.minPassphraseScore {
		return fmt.Errorf("%w: score %d, required %d", ErrWeakPassphrase, score, v.minPassphraseScore)
	}
	return nil
}

func checkRequired(value string, err error) error {
	if value == "" {
		return err
	}
	return nil
}

func checkNetwork(network models.Network) error {
	if !network.IsValid() {
		return ErrInvalidNetwork
	}
	return nil
}

func checkAssets(source, destination models.Asset) error {
	for _, asset := range []models.Asset{source, destination} {
		if asset.IsNative() {
			continue
		}
		if !assetCodePattern.MatchString(asset.Code) || !keypair.IsValidAddress(asset.Issuer) {
			return fmt.Errorf("%w: %s", ErrInvalidAsset, asset)
		}
	}
	if source.Equal(destination) {
		return ErrSameAsset
	}
	return nil
}

func checkAmounts(sourceAmount, destinationMin string) error {
	if err := checkAmount(sourceAmount, false); err != nil {
		return fmt.Errorf("source amount: %w", err)
	}
	if destinationMin != "" {
		if err := checkAmount(destinationMin, true); err != nil {
			return fmt.Errorf("destination minimum: %w", err)
		}
	}
	return nil
}

func checkAmount(amount string, allowZero bool) error {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return ErrInvalidAmount
	}
	if d.IsNegative() || (!allowZero && d.IsZero()) {
		return ErrInvalidAmount
	}
	if -d.Exponent() > maxAmountDigits && !d.Equal(d.Truncate(maxAmountDigits)) {
		return ErrInvalidAmount
	}
	return nil
}
