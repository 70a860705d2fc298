package models

// BankOther is the fallback label for unrecognized banks.
const BankOther = "Other"

// Banks is the fixed set of bank labels an account may carry.
var Banks = []string{
	"Itaú",
	"Bradesco",
	"Cresol",
	"Santander",
	"Banco do Brasil",
	"Picpay",
	"Inter",
	"NuBank",
	"Caixa",
	"Sicoob",
	"Sicredi",
	"C6Bank",
	"Mercado Pago",
	"PagBank",
	"PayPal",
	BankOther,
}

// NormalizeBank maps a user-supplied bank label onto the known set,
// falling back to BankOther.
func NormalizeBank(bank string) string {
	for _, b := range Banks {
		if b == bank {
			return b
		}
	}
	return BankOther
}
