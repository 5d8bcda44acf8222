package invoice

import (
	"bytes"
	"encoding/json"
)

// Text is a free-text field decoded leniently from JSON. Strings are kept,
// numbers keep their literal form, and anything else (null, booleans, objects,
// arrays) becomes empty, which the tax calculator reads as 0.
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		*t = ""
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			*t = ""
			return nil
		}
		*t = Text(n.String())
	default:
		*t = ""
	}
	return nil
}

// lineItemJSON is the wire form of LineItem with every field lenient.
type lineItemJSON struct {
	Particulars Text `json:"particulars"`
	Purity      Text `json:"purity"`
	GrossWeight Text `json:"grossWeight"`
	NetWeight   Text `json:"netWeight"`
	Rate        Text `json:"rate"`
	Amount      Text `json:"amount"`
}

// UnmarshalJSON accepts numbers and stray types in any item field, so a record
// written by a client that sends {"amount": 1000} decodes the same as
// {"amount": "1000"}.
func (li *LineItem) UnmarshalJSON(data []byte) error {
	var raw lineItemJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*li = LineItem{
		Particulars: string(raw.Particulars),
		Purity:      string(raw.Purity),
		GrossWeight: string(raw.GrossWeight),
		NetWeight:   string(raw.NetWeight),
		Rate:        string(raw.Rate),
		Amount:      string(raw.Amount),
	}
	return nil
}
