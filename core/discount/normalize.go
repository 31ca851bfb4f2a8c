package discount

import (
	"encoding/json"

	"github.com/cockroachdb/errors"
)

// codeDiscount is one decoded variant of the platform's CodeDiscount union.
type codeDiscount interface {
	record(id string) Record
}

type codeConnection struct {
	Nodes []struct {
		Code string `json:"code"`
	} `json:"nodes"`
}

func (c codeConnection) first() string {
	if len(c.Nodes) == 0 {
		return ""
	}
	return c.Nodes[0].Code
}

type basicCodeDiscount struct {
	Title string         `json:"title"`
	Codes codeConnection `json:"codes"`
}

func (d basicCodeDiscount) record(id string) Record {
	return Record{ID: id, Code: d.Codes.first(), Title: d.Title, Kind: KindBasic}
}

type bxgyCodeDiscount struct {
	Title string         `json:"title"`
	Codes codeConnection `json:"codes"`
}

func (d bxgyCodeDiscount) record(id string) Record {
	return Record{ID: id, Code: d.Codes.first(), Title: d.Title, Kind: KindBuyXGetY}
}

type freeShippingCodeDiscount struct {
	Title string         `json:"title"`
	Codes codeConnection `json:"codes"`
}

func (d freeShippingCodeDiscount) record(id string) Record {
	return Record{ID: id, Code: d.Codes.first(), Title: d.Title, Kind: KindFreeShipping}
}

// unknownCodeDiscount covers app discounts and any variant added later.
type unknownCodeDiscount struct {
	Title string         `json:"title"`
	Codes codeConnection `json:"codes"`
}

func (d unknownCodeDiscount) record(id string) Record {
	return Record{ID: id, Code: d.Codes.first(), Title: d.Title, Kind: KindUnknown}
}

func decodeCodeDiscount(raw json.RawMessage) (codeDiscount, error) {
	var head struct {
		TypeName string `json:"__typename"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return nil, errors.Wrap(err, "decode code discount")
	}

	var (
		d   codeDiscount
		err error
	)
	switch head.TypeName {
	case "DiscountCodeBasic":
		var v basicCodeDiscount
		err = json.Unmarshal(raw, &v)
		d = v
	case "DiscountCodeBxgy":
		var v bxgyCodeDiscount
		err = json.Unmarshal(raw, &v)
		d = v
	case "DiscountCodeFreeShipping":
		var v freeShippingCodeDiscount
		err = json.Unmarshal(raw, &v)
		d = v
	default:
		var v unknownCodeDiscount
		err = json.Unmarshal(raw, &v)
		d = v
	}
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s", head.TypeName)
	}
	return d, nil
}
