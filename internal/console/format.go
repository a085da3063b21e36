package console

import (
	"fmt"
	"text/tabwriter"

	"inventory-ledger/internal/models"
)

const timeLayout = "2006-01-02 15:04:05"

func (c *Console) table() *tabwriter.Writer {
	return tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
}

func stockLabel(p models.Product) string {
	switch {
	case p.Quantity == 0:
		return "out of stock"
	case p.IsLowStock():
		return "low"
	default:
		return "ok"
	}
}

func (c *Console) printProducts(products []models.Product) error {
	if len(products) == 0 {
		fmt.Fprintln(c.out, "no products")
		return nil
	}

	tw := c.table()
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tQTY\tTHRESHOLD\tWAREHOUSE\tSTATUS")
	for _, p := range products {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%s\t%s\n",
			p.ID, p.Name, p.Category, p.Quantity, p.ReorderThreshold, p.WarehouseID, stockLabel(p))
	}
	return tw.Flush()
}

func (c *Console) printAlerts(alerts []models.Alert) error {
	if len(alerts) == 0 {
		fmt.Fprintln(c.out, "no alerts")
		return nil
	}

	tw := c.table()
	fmt.Fprintln(tw, "ID\tPRODUCT\tQTY\tTHRESHOLD\tSTATUS\tRAISED")
	for _, a := range alerts {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\t%s\n",
			a.ID, a.ProductName, a.Quantity, a.Threshold, a.Status, a.Timestamp.Format(timeLayout))
	}
	return tw.Flush()
}

func (c *Console) printActivities(activities []models.Activity) error {
	if len(activities) == 0 {
		fmt.Fprintln(c.out, "no activity")
		return nil
	}

	tw := c.table()
	fmt.Fprintln(tw, "TIME\tTYPE\tMESSAGE")
	for _, a := range activities {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", a.Timestamp.Format(timeLayout), a.Type, a.Message)
	}
	return tw.Flush()
}

func (c *Console) printDashboard(s models.DashboardStats) error {
	tw := c.table()
	fmt.Fprintf(tw, "warehouse\t%s\n", s.WarehouseID)
	fmt.Fprintf(tw, "total products\t%d\n", s.TotalProducts)
	fmt.Fprintf(tw, "low stock items\t%d\n", s.LowStockItems)
	fmt.Fprintf(tw, "total quantity\t%d\n", s.TotalQuantity)
	fmt.Fprintf(tw, "shipments received\t%d\n", s.ShipmentsReceived)
	fmt.Fprintf(tw, "orders fulfilled\t%d\n", s.OrdersFulfilled)
	fmt.Fprintf(tw, "active alerts\t%d\n", s.ActiveAlerts)
	return tw.Flush()
}

func (c *Console) printWarehouseStats(stats []models.WarehouseStats) error {
	tw := c.table()
	fmt.Fprintln(tw, "ID\tNAME\tLOCATION\tPRODUCTS\tUNITS\tLOW\tOUT")
	for _, s := range stats {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%d\t%d\n",
			s.Warehouse.ID, s.Warehouse.Name, s.Warehouse.Location,
			s.TotalProducts, s.TotalUnits, s.LowStock, s.OutOfStock)
	}
	return tw.Flush()
}

func (c *Console) printSettings(s models.Settings) {
	fmt.Fprintf(c.out, "alert_sound=%t default_threshold=%d theme=%s\n", s.AlertSound, s.DefaultThreshold, s.Theme)
}

// PrintDashboard writes dashboard and per-warehouse stats, used by the stats subcommand
func (c *Console) PrintDashboard(warehouseID string) error {
	if err := c.printDashboard(c.ledger.DashboardStats(warehouseID)); err != nil {
		return err
	}
	fmt.Fprintln(c.out)
	return c.printWarehouseStats(c.ledger.WarehouseStats())
}
