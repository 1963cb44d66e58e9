package report

// KPIIcon selects the icon of a KPI card
type KPIIcon string

const (
	IconCurrency KPIIcon = "currency"
	IconCart     KPIIcon = "cart"
	IconUsers    KPIIcon = "users"
	IconActivity KPIIcon = "activity"
)

// KPI keys
const (
	KPITotalRevenue = "totalRevenue"
	KPIActiveOrders = "activeOrders"
	KPINewCustomers = "newCustomers"
	KPIStockValue   = "stockValue"
)

// KPIInput is a configured KPI figure. The values are supplied from
// configuration; they are not computed from the ledger.
type KPIInput struct {
	Value string
	Trend float64
}

// KPIInputs holds the four dashboard figures
type KPIInputs struct {
	TotalRevenue KPIInput
	ActiveOrders KPIInput
	NewCustomers KPIInput
	StockValue   KPIInput
}

// DefaultKPIInputs returns the illustrative dashboard figures
func DefaultKPIInputs() KPIInputs {
	return KPIInputs{
		TotalRevenue: KPIInput{Value: "$54,230", Trend: 12.5},
		ActiveOrders: KPIInput{Value: "45", Trend: -2.4},
		NewCustomers: KPIInput{Value: "128", Trend: 8.2},
		StockValue:   KPIInput{Value: "$12,450", Trend: 4.1},
	}
}

// KPICard is one dashboard metric with its trend versus last month
type KPICard struct {
	Key      string  `json:"key"`
	Value    string  `json:"value"`
	Trend    float64 `json:"trend"`
	Positive bool    `json:"positive"`
	Icon     KPIIcon `json:"icon"`
}

// KPICards returns the four dashboard cards in display order
func KPICards(in KPIInputs) []KPICard {
	card := func(key string, v KPIInput, icon KPIIcon) KPICard {
		return KPICard{
			Key:      key,
			Value:    v.Value,
			Trend:    v.Trend,
			Positive: v.Trend >= 0,
			Icon:     icon,
		}
	}

	return []KPICard{
		card(KPITotalRevenue, in.TotalRevenue, IconCurrency),
		card(KPIActiveOrders, in.ActiveOrders, IconCart),
		card(KPINewCustomers, in.NewCustomers, IconUsers),
		card(KPIStockValue, in.StockValue, IconActivity),
	}
}

// SalesPoint is one day of the weekly comparison chart
type SalesPoint struct {
	Name     string  `json:"name"`
	Value    float64 `json:"value"`
	Previous float64 `json:"previous"`
}

// WeeklyComparison returns the illustrative current-versus-previous week series
func WeeklyComparison() []SalesPoint {
	return []SalesPoint{
		{Name: "Mon", Value: 4000, Previous: 2400},
		{Name: "Tue", Value: 3000, Previous: 1398},
		{Name: "Wed", Value: 2000, Previous: 9800},
		{Name: "Thu", Value: 2780, Previous: 3908},
		{Name: "Fri", Value: 1890, Previous: 4800},
		{Name: "Sat", Value: 2390, Previous: 3800},
		{Name: "Sun", Value: 3490, Previous: 4300},
	}
}
