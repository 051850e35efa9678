package model

import (
	"fmt"

	"humankey/internal/common"
)

// PulseRecord holds the eight sampled pulse values.
// Field order is part of the hashed encoding and must not change.
type PulseRecord struct {
	E0 string `json:"e_0"`
	E1 string `json:"e_1"`
	E2 string `json:"e_2"`
	E3 string `json:"e_3"`
	E4 string `json:"e_4"`
	E5 string `json:"e_5"`
	E6 string `json:"e_6"`
	E7 string `json:"e_7"`
}

// PulseFieldNames lists the form/JSON names of the pulse fields in encoding order
var PulseFieldNames = [8]string{"e_0", "e_1", "e_2", "e_3", "e_4", "e_5", "e_6", "e_7"}

// DefaultPulseRecord returns the sample record shown on the demo page.
func DefaultPulseRecord() PulseRecord {
	return PulseRecord{
		E0: "0.4571292698",
		E1: "0.5353872776",
		E2: "0.5696328282",
		E3: "0.2271608561",
		E4: "0.2271608561",
		E5: "0.1370210052",
		E6: "0.921902895",
		E7: "0.2847377956",
	}
}

// Fields returns the values in encoding order.
func (r *PulseRecord) Fields() [8]string {
	return [8]string{r.E0, r.E1, r.E2, r.E3, r.E4, r.E5, r.E6, r.E7}
}

// PulseRecordFromFields builds a record from values in encoding order.
func PulseRecordFromFields(values [8]string) PulseRecord {
	return PulseRecord{
		E0: values[0],
		E1: values[1],
		E2: values[2],
		E3: values[3],
		E4: values[4],
		E5: values[5],
		E6: values[6],
		E7: values[7],
	}
}

// Validate checks that every field is a well-formed decimal string.
func (r *PulseRecord) Validate() error {
	for i, v := range r.Fields() {
		if !common.IsDecimal(v) {
			return fmt.Errorf("%s must be a decimal number, got %q", PulseFieldNames[i], v)
		}
	}
	return nil
}
