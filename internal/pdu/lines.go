package pdu

// Category describes one logic unit: a bank of switchable power lines
// addressed as a bitmask register.
type Category struct {
	ID       int
	Name     string
	AdcLabel string
	Width    int     // number of lines in the bank
	Nominal  float64 // nominal per-line current in amperes
}

// NumCategories is the number of logic units the PDU exposes.
const NumCategories = 9

// categories is the closed set of logic units, indexed by LogicUnitId.
var categories = [NumCategories]Category{
	{0, "HighPwHeaterEnSel", "HighPwHeaterAdcSel", 16, 2.0},
	{1, "LowPwHeaterEnSel", "LowPwHeaterAdcSel", 16, 0.5},
	{2, "ReactionWheelEnSel", "ReactionWheelAdcSel", 4, 5.0},
	{3, "PropEnSel", "PropAdcSel", 16, 1.5},
	{4, "AvionicLoadEnSel", "AvionicLoadAdcSel", 16, 3.0},
	{5, "HdrmEnSel", "HdrmAdcSel", 16, 2.5},
	{6, "IsolatedLdoEnSel", "IsolatedLdoAdcSel", 16, 0.8},
	{7, "IsolatedPwEnSel", "IsolatedPwAdcSel", 16, 1.2},
	{8, "ThermAndFlybackEnSel", "ThermAndFlybackAdcSel", 16, 1.0},
}

const hdrmUnit = 5

// CategoryByID returns the category for a LogicUnitId, or false when the id
// is outside the closed set.
func CategoryByID(id int) (Category, bool) {
	if id < 0 || id >= NumCategories {
		return Category{}, false
	}
	return categories[id], true
}

// widthMask clears any bits above the category width.
func (c Category) widthMask() uint16 {
	if c.Width >= 16 {
		return 0xFFFF
	}
	return uint16(1)<<c.Width - 1
}
