package console

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"inventory-ledger/internal/models"
)

// ErrNotFound is returned when a command names a product or warehouse that does not exist
var ErrNotFound = errors.New("not found")

func commandTable() map[string]command {
	return map[string]command{
		"products":   {"products [warehouse] [all|low|out|sufficient] [search...]", (*Console).listProducts},
		"add":        {"add <name> <category> <qty> <threshold|-> <warehouse>", (*Console).addProduct},
		"update":     {"update <id> key=value... (name, category, qty, threshold, warehouse)", (*Console).updateProduct},
		"delete":     {"delete <id>", (*Console).deleteProduct},
		"ship":       {"ship <id> <qty>", (*Console).receiveShipment},
		"order":      {"order <id> <qty>", (*Console).fulfillOrder},
		"alerts":     {"alerts [active|resolved|dismissed]", (*Console).listAlerts},
		"resolve":    {"resolve <alert-id>", (*Console).resolveAlert},
		"dismiss":    {"dismiss <alert-id>", (*Console).dismissAlert},
		"activity":   {"activity", (*Console).listActivity},
		"stats":      {"stats [warehouse]", (*Console).showStats},
		"warehouses": {"warehouses", (*Console).listWarehouses},
		"settings":   {"settings [alert_sound=bool] [default_threshold=n] [theme=name]", (*Console).settings},
		"toasts":     {"toasts", (*Console).listToasts},
		"use":        {"use <warehouse>", (*Console).useWarehouse},
		"help":       {"help", (*Console).help},
	}
}

func (c *Console) isWarehouse(id string) bool {
	for _, w := range c.ledger.Warehouses() {
		if w.ID == id {
			return true
		}
	}
	return false
}

func parseStatus(s string) (models.StockStatus, bool) {
	switch status := models.StockStatus(strings.ToLower(s)); status {
	case models.StockStatusAll, models.StockStatusLow, models.StockStatusOut, models.StockStatusSufficient:
		return status, true
	}
	return "", false
}

func (c *Console) listProducts(args []string) error {
	filter := models.ProductFilter{WarehouseID: c.selectedWarehouse, Status: models.StockStatusAll}

	rest := args
	if len(rest) > 0 && c.isWarehouse(rest[0]) {
		filter.WarehouseID = rest[0]
		rest = rest[1:]
	}
	if len(rest) > 0 {
		if status, ok := parseStatus(rest[0]); ok {
			filter.Status = status
			rest = rest[1:]
		}
	}
	filter.Search = strings.Join(rest, " ")

	return c.printProducts(c.ledger.FilterProducts(filter))
}

func (c *Console) addProduct(args []string) error {
	if len(args) != 5 {
		return ErrUsage
	}

	qty, err := parseNonNegative("qty", args[2])
	if err != nil {
		return err
	}

	threshold := c.ledger.Settings().DefaultThreshold
	if args[3] != "-" {
		if threshold, err = parseNonNegative("threshold", args[3]); err != nil {
			return err
		}
	}

	warehouse := args[4]
	if warehouse == models.AllWarehouses || !c.isWarehouse(warehouse) {
		return fmt.Errorf("warehouse %q: %w", warehouse, ErrNotFound)
	}

	product, err := c.ledger.AddProduct(models.NewProduct{
		Name:             args[0],
		Category:         args[1],
		Quantity:         qty,
		ReorderThreshold: threshold,
		WarehouseID:      warehouse,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(c.out, "added %s\n", product.ID)
	return nil
}

func (c *Console) updateProduct(args []string) error {
	if len(args) < 2 {
		return ErrUsage
	}

	fields, err := parseAssignments(args[1:])
	if err != nil {
		return err
	}

	var update models.ProductUpdate
	for key, value := range fields {
		switch key {
		case "name":
			update.Name = &value
		case "category":
			update.Category = &value
		case "qty", "quantity":
			n, err := parseNonNegative(key, value)
			if err != nil {
				return err
			}
			update.Quantity = &n
		case "threshold", "reorder_threshold":
			n, err := parseNonNegative(key, value)
			if err != nil {
				return err
			}
			update.ReorderThreshold = &n
		case "warehouse":
			if value == models.AllWarehouses || !c.isWarehouse(value) {
				return fmt.Errorf("warehouse %q: %w", value, ErrNotFound)
			}
			update.WarehouseID = &value
		default:
			return fmt.Errorf("%w: unknown field %q", ErrUsage, key)
		}
	}

	found, err := c.ledger.UpdateProduct(args[0], update)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("product %q: %w", args[0], ErrNotFound)
	}
	return nil
}

func (c *Console) deleteProduct(args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	if !c.ledger.DeleteProduct(args[0]) {
		return fmt.Errorf("product %q: %w", args[0], ErrNotFound)
	}
	return nil
}

// stockArgs parses "<id> <qty>". The quantity may be zero or negative; the
// ledger reports that through a notification.
func (c *Console) stockArgs(args []string) (string, int, error) {
	if len(args) != 2 {
		return "", 0, ErrUsage
	}
	qty, err := parseInt("qty", args[1])
	if err != nil {
		return "", 0, err
	}
	if _, ok := c.ledger.Product(args[0]); !ok {
		return "", 0, fmt.Errorf("product %q: %w", args[0], ErrNotFound)
	}
	return args[0], qty, nil
}

func (c *Console) receiveShipment(args []string) error {
	id, qty, err := c.stockArgs(args)
	if err != nil {
		return err
	}
	c.ledger.ReceiveShipment(id, qty)
	return nil
}

func (c *Console) fulfillOrder(args []string) error {
	id, qty, err := c.stockArgs(args)
	if err != nil {
		return err
	}
	c.ledger.FulfillOrder(id, qty)
	return nil
}

func (c *Console) listAlerts(args []string) error {
	if len(args) > 1 {
		return ErrUsage
	}

	snap := c.ledger.Snapshot()
	alerts := snap.Alerts
	if len(args) == 1 {
		status := models.AlertStatus(strings.ToLower(args[0]))
		alerts = alerts[:0:0]
		for _, a := range snap.Alerts {
			if a.Status == status {
				alerts = append(alerts, a)
			}
		}
	}

	if err := c.printAlerts(alerts); err != nil {
		return err
	}

	counts := c.ledger.AlertCounts()
	fmt.Fprintf(c.out, "total %d, active %d, resolved %d, dismissed %d\n",
		counts.Total, counts.Active, counts.Resolved, counts.Dismissed)
	return nil
}

func (c *Console) resolveAlert(args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	if !c.ledger.ResolveAlert(args[0]) {
		fmt.Fprintf(c.out, "alert %s unchanged\n", args[0])
	}
	return nil
}

func (c *Console) dismissAlert(args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	if !c.ledger.DismissAlert(args[0]) {
		fmt.Fprintf(c.out, "alert %s unchanged\n", args[0])
	}
	return nil
}

func (c *Console) listActivity(args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	return c.printActivities(c.ledger.Snapshot().Activities)
}

func (c *Console) showStats(args []string) error {
	if len(args) > 1 {
		return ErrUsage
	}

	warehouse := c.selectedWarehouse
	if len(args) == 1 {
		if !c.isWarehouse(args[0]) {
			return fmt.Errorf("warehouse %q: %w", args[0], ErrNotFound)
		}
		warehouse = args[0]
	}

	return c.printDashboard(c.ledger.DashboardStats(warehouse))
}

func (c *Console) listWarehouses(args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	return c.printWarehouseStats(c.ledger.WarehouseStats())
}

func (c *Console) settings(args []string) error {
	if len(args) == 0 {
		c.printSettings(c.ledger.Settings())
		return nil
	}

	fields, err := parseAssignments(args)
	if err != nil {
		return err
	}

	var update models.SettingsUpdate
	for key, value := range fields {
		switch key {
		case "alert_sound", "alertsound":
			b, err := strconv.ParseBool(value)
			if err != nil {
				return fmt.Errorf("%w: alert_sound must be true or false, got %q", ErrUsage, value)
			}
			update.AlertSound = &b
		case "default_threshold", "defaultthreshold":
			n, err := parseNonNegative(key, value)
			if err != nil {
				return err
			}
			update.DefaultThreshold = &n
		case "theme":
			update.Theme = &value
		default:
			return fmt.Errorf("%w: unknown setting %q", ErrUsage, key)
		}
	}

	c.printSettings(c.ledger.UpdateSettings(update))
	return nil
}

func (c *Console) listToasts(args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	if c.feed == nil {
		fmt.Fprintln(c.out, "no notification feed")
		return nil
	}
	for _, n := range c.feed.Visible() {
		fmt.Fprintf(c.out, "[%s] %s\n", n.Severity, n.Message)
	}
	return nil
}

func (c *Console) useWarehouse(args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	if !c.isWarehouse(args[0]) {
		return fmt.Errorf("warehouse %q: %w", args[0], ErrNotFound)
	}

	c.selectedWarehouse = args[0]
	c.logger.Debug("Warehouse selected", "warehouse_id", args[0])
	fmt.Fprintf(c.out, "selected %s\n", args[0])
	return nil
}

func (c *Console) help(_ []string) error {
	names := make([]string, 0, len(c.commands))
	for name := range c.commands {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		fmt.Fprintln(c.out, c.commands[name].usage)
	}
	return nil
}
