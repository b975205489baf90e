package synopsis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		surface string
		want    Classification
	}{
		{"Walls", ClassWall},
		{"wall", ClassWall},
		{"Accent Wall", ClassWall},
		{"Ceiling", ClassCeiling},
		{"Tray Ceiling", ClassCeiling},
		{"Trim", ClassTrim},
		{"Baseboards", ClassTrim},
		{"Crown Molding", ClassTrim},
		{"Door Casing", ClassTrim},
		{"window trim", ClassTrim},
		{"Wainscoting", ClassTrim},
		{"Doors", ClassTrim},
		{"Cabinets", ClassUnclassified},
		{"Exterior Siding", ClassUnclassified},
		{"", ClassUnclassified},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, Classify(tc.surface), "surface %q", tc.surface)
	}
}

func TestClassifyTrimBeatsWall(t *testing.T) {
	// a surface naming both trim and wall keywords buckets as trim; the trim
	// keywords are checked first
	assert.Equal(t, ClassTrim, Classify("Wall Trim"))
}
