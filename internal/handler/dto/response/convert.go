package response

import (
	"github.com/jinzhu/copier"
	"github.com/shopspring/decimal"
)

// Money and percentages go out as decimal strings so clients never see float rounding.
var copyOpt = copier.Option{
	Converters: []copier.TypeConverter{
		{
			SrcType: decimal.Decimal{},
			DstType: copier.String,
			Fn: func(src any) (any, error) {
				return src.(decimal.Decimal).String(), nil
			},
		},
	},
}

func mustCopy(to, from any) {
	if err := copier.CopyWithOption(to, from, copyOpt); err != nil {
		panic("response: " + err.Error())
	}
}
