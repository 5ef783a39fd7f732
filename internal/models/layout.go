package models

// WidgetKey identifies one dashboard panel.
type WidgetKey string

const (
	WidgetKPI           WidgetKey = "kpi"
	WidgetMap           WidgetKey = "map"
	WidgetObjects       WidgetKey = "objects"
	WidgetTasks         WidgetKey = "tasks"
	WidgetTasksTable    WidgetKey = "tasks_table"
	WidgetEmployees     WidgetKey = "employees"
	WidgetMaterials     WidgetKey = "materials"
	WidgetWarnings      WidgetKey = "warnings"
	WidgetCharts        WidgetKey = "charts"
	WidgetNotifications WidgetKey = "notifications"
)

// DashboardConfigKey is the key the layout is stored under, locally and in the settings store.
const DashboardConfigKey = "dashboard_config"

// DefaultWidgetOrder is the canonical rendering order.
var DefaultWidgetOrder = []WidgetKey{
	WidgetKPI,
	WidgetMap,
	WidgetObjects,
	WidgetTasks,
	WidgetTasksTable,
	WidgetEmployees,
	WidgetMaterials,
	WidgetWarnings,
	WidgetCharts,
	WidgetNotifications,
}

// DashboardConfig is the user's dashboard layout: render order plus the widgets switched off.
type DashboardConfig struct {
	Order  []WidgetKey `json:"order"`
	Hidden []WidgetKey `json:"hidden"`
}

// DefaultDashboardConfig returns a fresh copy of the default layout.
func DefaultDashboardConfig() DashboardConfig {
	order := make([]WidgetKey, len(DefaultWidgetOrder))
	copy(order, DefaultWidgetOrder)
	return DashboardConfig{
		Order:  order,
		Hidden: []WidgetKey{},
	}
}
