package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errx "github.com/aura-storefront/server/internal/core/error"
)

func validForm() Form {
	return Form{
		Email:      "budi@contoh.com",
		FirstName:  "Budi",
		LastName:   "Santoso",
		Address:    "Jl. Sudirman No. 1",
		City:       "Jakarta",
		Postcode:   "12190",
		Phone:      "081-234-56789",
		CardNumber: "4242 4242 4242 4242",
		Expiry:     "12/28",
		CVC:        "123",
	}
}

func TestFormValidateOK(t *testing.T) {
	assert.NoError(t, validForm().Validate())

	f := validForm()
	f.Email = "  budi@contoh.com  "
	assert.NoError(t, f.Validate())
}

func TestFormValidateCollectsAllFields(t *testing.T) {
	f := validForm()
	f.Email = "not-an-email"
	f.FirstName = "<script>"
	f.Postcode = ""
	f.Expiry = "13/28"
	f.CVC = "12"

	err := f.Validate()
	require.Error(t, err)

	var verr *errx.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, map[string]string{
		"email":      "enter a valid email address",
		"first_name": "first name contains unsupported characters",
		"postcode":   "required",
		"expiry":     "use MM/YY",
		"cvc":        "enter the 3 or 4 digit code",
	}, verr.Fields)
}

func TestFormBilling(t *testing.T) {
	f := validForm()
	f.City = " Bandung "
	b := f.Billing()
	assert.Equal(t, "Bandung", b.City)
	assert.Equal(t, "Jl. Sudirman No. 1", b.Address1)
	assert.Equal(t, "budi@contoh.com", b.Email)
}
