package ledger

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"inventory-ledger/internal/models"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// validateProduct checks the structural shape of product input
func validateProduct(input models.NewProduct) error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		issues := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			issues = append(issues, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
		}
		return fmt.Errorf("%w: %s", ErrInvalidArgument, strings.Join(issues, ", "))
	}
	return fmt.Errorf("%w: %v", ErrInvalidArgument, err)
}

// mergeProduct applies non-nil update fields to a copy of p
func mergeProduct(p models.Product, u models.ProductUpdate) models.Product {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Category != nil {
		p.Category = *u.Category
	}
	if u.Quantity != nil {
		p.Quantity = *u.Quantity
	}
	if u.ReorderThreshold != nil {
		p.ReorderThreshold = *u.ReorderThreshold
	}
	if u.WarehouseID != nil {
		p.WarehouseID = *u.WarehouseID
	}
	return p
}

func asNewProduct(p models.Product) models.NewProduct {
	return models.NewProduct{
		Name:             p.Name,
		Category:         p.Category,
		Quantity:         p.Quantity,
		ReorderThreshold: p.ReorderThreshold,
		WarehouseID:      p.WarehouseID,
	}
}
