package pdf

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// moneyFormatter formatea montos con separadores del idioma configurado (es: 1.234,50).
type moneyFormatter struct {
	p *message.Printer
}

func newMoneyFormatter(tag language.Tag) moneyFormatter {
	return moneyFormatter{p: message.NewPrinter(tag)}
}

// Format siempre con 2 decimales y prefijo "$".
func (f moneyFormatter) Format(v decimal.Decimal) string {
	return "$" + f.p.Sprint(number.Decimal(v.Round(2).InexactFloat64(), number.Scale(2)))
}
