package checkout

import (
	"strings"

	errx "github.com/aura-storefront/server/internal/core/error"
	"github.com/aura-storefront/server/internal/shop/model"
	"github.com/aura-storefront/server/internal/shop/security"
)

// Form is the checkout submission. Card fields are validated and then
// dropped; they never reach storage.
type Form struct {
	Email      string `json:"email"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Address    string `json:"address_1"`
	City       string `json:"city"`
	Postcode   string `json:"postcode"`
	Phone      string `json:"phone"`
	CardNumber string `json:"card_number"`
	Expiry     string `json:"expiry"`
	CVC        string `json:"cvc"`
}

type fieldRule struct {
	name  string
	value func(Form) string
	kind  security.Kind
	msg   string
}

var rules = []fieldRule{
	{"email", func(f Form) string { return f.Email }, security.Email, "enter a valid email address"},
	{"first_name", func(f Form) string { return f.FirstName }, security.TextSafe, "first name contains unsupported characters"},
	{"last_name", func(f Form) string { return f.LastName }, security.TextSafe, "last name contains unsupported characters"},
	{"address_1", func(f Form) string { return f.Address }, security.TextSafe, "address contains unsupported characters"},
	{"city", func(f Form) string { return f.City }, security.TextSafe, "city contains unsupported characters"},
	{"postcode", func(f Form) string { return f.Postcode }, security.Zip, "enter a valid postcode"},
	{"phone", func(f Form) string { return f.Phone }, security.Phone, "enter a valid phone number"},
	{"card_number", func(f Form) string { return f.CardNumber }, security.Card, "enter a valid card number"},
	{"expiry", func(f Form) string { return f.Expiry }, security.Expiry, "use MM/YY"},
	{"cvc", func(f Form) string { return f.CVC }, security.CVC, "enter the 3 or 4 digit code"},
}

// Validate checks every field and reports all failures together.
func (f Form) Validate() error {
	f = f.trimmed()
	verr := errx.NewValidationError()
	for _, r := range rules {
		v := r.value(f)
		if v == "" {
			verr.Add(r.name, "required")
			continue
		}
		if !security.Validate(v, r.kind) {
			verr.Add(r.name, r.msg)
		}
	}
	return verr.OrNil()
}

// Billing returns the address part of the form.
func (f Form) Billing() *model.Billing {
	f = f.trimmed()
	return &model.Billing{
		FirstName: f.FirstName,
		LastName:  f.LastName,
		Email:     f.Email,
		Phone:     f.Phone,
		Address1:  f.Address,
		City:      f.City,
		Postcode:  f.Postcode,
	}
}

func (f Form) trimmed() Form {
	return Form{
		Email:      strings.TrimSpace(f.Email),
		FirstName:  strings.TrimSpace(f.FirstName),
		LastName:   strings.TrimSpace(f.LastName),
		Address:    strings.TrimSpace(f.Address),
		City:       strings.TrimSpace(f.City),
		Postcode:   strings.TrimSpace(f.Postcode),
		Phone:      strings.TrimSpace(f.Phone),
		CardNumber: strings.TrimSpace(f.CardNumber),
		Expiry:     strings.TrimSpace(f.Expiry),
		CVC:        strings.TrimSpace(f.CVC),
	}
}
