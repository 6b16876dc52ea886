package tco

import (
	"errors"
	"fmt"
)

var ErrUnknownKind = errors.New("unknown powertrain kind")

type Fuel int

const (
	FuelDiesel Fuel = iota + 1
	FuelElectric
)

func (f Fuel) String() string {
	switch f {
	case FuelDiesel:
		return "diesel"
	case FuelElectric:
		return "electric"
	}
	return "unknown"
}

// PowertrainKind identifies one of the six truck configurations compared by the model.
type PowertrainKind int

const (
	EuroDiesel PowertrainKind = iota + 1
	ChineseDiesel
	EuropeanEV
	ChineseEVCharged
	ChineseEVSwapped
	ChineseEVBaaS
)

var AllKinds = []PowertrainKind{
	EuroDiesel,
	ChineseDiesel,
	EuropeanEV,
	ChineseEVCharged,
	ChineseEVSwapped,
	ChineseEVBaaS,
}

func (k PowertrainKind) Fuel() Fuel {
	switch k {
	case EuroDiesel, ChineseDiesel:
		return FuelDiesel
	case EuropeanEV, ChineseEVCharged, ChineseEVSwapped, ChineseEVBaaS:
		return FuelElectric
	}
	return 0
}

// String returns the key used for the kind in persisted input and result documents.
func (k PowertrainKind) String() string {
	switch k {
	case EuroDiesel:
		return "euroDiesel"
	case ChineseDiesel:
		return "chineseDiesel"
	case EuropeanEV:
		return "europeanEV"
	case ChineseEVCharged:
		return "chineseEVCharged"
	case ChineseEVSwapped:
		return "chineseEVSwapped"
	case ChineseEVBaaS:
		return "chineseEVBaaS"
	}
	return fmt.Sprintf("PowertrainKind(%d)", int(k))
}

func (k PowertrainKind) Label() string {
	switch k {
	case EuroDiesel:
		return "Euro Diesel"
	case ChineseDiesel:
		return "Chinese Diesel"
	case EuropeanEV:
		return "European EV"
	case ChineseEVCharged:
		return "Chinese EV (Charged)"
	case ChineseEVSwapped:
		return "Chinese EV (Swapped)"
	case ChineseEVBaaS:
		return "Chinese EV (BaaS)"
	}
	return k.String()
}

func ParseKind(s string) (PowertrainKind, error) {
	for _, k := range AllKinds {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

func (k PowertrainKind) MarshalText() ([]byte, error) {
	if k.Fuel() == 0 {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, int(k))
	}
	return []byte(k.String()), nil
}

func (k *PowertrainKind) UnmarshalText(b []byte) error {
	parsed, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
