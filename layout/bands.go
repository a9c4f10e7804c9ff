package layout

import (
	"github.com/lixenwraith/constellation/entity"
	"github.com/lixenwraith/constellation/parameter"
)

// Bands holds the uncharted scatter band and one band per shell
type Bands struct {
	Uncharted Band `mapstructure:"uncharted"`
	Inner     Band `mapstructure:"inner"`
	Middle    Band `mapstructure:"middle"`
	Outer     Band `mapstructure:"outer"`
}

// DefaultBands returns the tuned defaults
func DefaultBands() Bands {
	return Bands{
		Uncharted: Band{parameter.UnchartedMinRadius, parameter.UnchartedMaxRadius, parameter.UnchartedMinZ, parameter.UnchartedMaxZ},
		Inner:     Band{parameter.InnerMinRadius, parameter.InnerMaxRadius, parameter.InnerMinZ, parameter.InnerMaxZ},
		Middle:    Band{parameter.MiddleMinRadius, parameter.MiddleMaxRadius, parameter.MiddleMinZ, parameter.MiddleMaxZ},
		Outer:     Band{parameter.OuterMinRadius, parameter.OuterMaxRadius, parameter.OuterMinZ, parameter.OuterMaxZ},
	}
}

// ForCategory returns the shell band, uncharted for CategoryNone
func (b Bands) ForCategory(c entity.Category) Band {
	switch c {
	case entity.CategoryInner:
		return b.Inner
	case entity.CategoryMiddle:
		return b.Middle
	case entity.CategoryOuter:
		return b.Outer
	default:
		return b.Uncharted
	}
}
