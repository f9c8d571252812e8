package safe_test

import (
	"fmt"

	"github.com/ecomledger/lib-compta/v2/compta/safe"
	"github.com/shopspring/decimal"
)

func ExampleSplitGross() {
	ht, tva, _ := safe.SplitGross(decimal.NewFromInt(72), decimal.NewFromInt(20))

	fmt.Println(ht.StringFixed(2), tva.StringFixed(2))

	// Output:
	// 60.00 12.00
}
