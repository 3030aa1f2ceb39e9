package keyview

import "github.com/dasdy/keyview/geometry"

// zoomPercent reads a --zoom value; empty means fitted and yields zero.
func zoomPercent(s string) (int, error) {
	if s == "" {
		return 0, nil
	}

	f, err := geometry.ParseScalePercent(s)
	if err != nil {
		return 0, err
	}

	return int(f*100 + 0.5), nil
}
