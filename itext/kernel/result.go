package kernel

import "github.com/wippyai/docbridge/foreign"

func object(v foreign.Value, err error) (foreign.Handle, error) {
	if err != nil {
		return foreign.Handle{}, err
	}
	return v.Object()
}

func float(v foreign.Value, err error) (float32, error) {
	if err != nil {
		return 0, err
	}
	return v.Float()
}
