// Package main seeds a development database with demo data.
// Safe to run repeatedly: existing rows are left in place.
package main

import (
	"context"
	"fmt"
	"os"

	"merx/internal/core/apperror"
	"merx/internal/core/types"
	"merx/internal/domain/auth"
	"merx/internal/domain/catalogs/category"
	"merx/internal/domain/catalogs/customer"
	"merx/internal/domain/catalogs/product"
	"merx/internal/domain/catalogs/supplier"
	"merx/internal/domain/catalogs/warehouse"
	"merx/internal/domain/registers/stock"
	"merx/internal/infrastructure/storage/postgres"
	"merx/internal/infrastructure/storage/postgres/auth_repo"
	"merx/internal/infrastructure/storage/postgres/catalog_repo"
	"merx/internal/infrastructure/storage/postgres/register_repo"
	"merx/pkg/logger"
	"merx/pkg/numerator"
)

func main() {
	log, err := logger.New(logger.Config{
		Level:       getEnv("LOG_LEVEL", "info"),
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(mustEnv("DATABASE_URL")))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	txm := postgres.NewTxManager(pool)
	num := numerator.New(postgres.NewSequenceQuerier(txm))

	s := &seeder{
		categories: category.NewService(catalog_repo.NewCategoryRepo(txm), txm, num),
		products:   product.NewService(catalog_repo.NewProductRepo(txm), txm, num),
		customers:  customer.NewService(catalog_repo.NewCustomerRepo(txm), txm, num),
		suppliers:  supplier.NewService(catalog_repo.NewSupplierRepo(txm), txm, num),
		warehouses: warehouse.NewService(catalog_repo.NewWarehouseRepo(txm), txm, num),
		stock:      stock.NewService(register_repo.NewStockRepo(txm), txm),
		// CreateUser never signs tokens; the secret here is irrelevant.
		users: auth.NewService(auth_repo.NewUserRepo(txm),
			auth.NewJWTService(auth.DefaultJWTConfig(getEnv("JWT_SECRET", "seed-only")))),
		log: log,
	}

	if err := s.run(ctx); err != nil {
		log.Fatalw("seed failed", "error", err)
	}

	log.Info("seed completed")
}

type seeder struct {
	categories *category.Service
	products   *product.Service
	customers  *customer.Service
	suppliers  *supplier.Service
	warehouses *warehouse.Service
	stock      *stock.Service
	users      *auth.Service
	log        *logger.Logger
}

func (s *seeder) run(ctx context.Context) error {
	if err := s.seedAdmin(ctx); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	electronics, err := s.ensureCategory(ctx, "CAT-ELEC", "Electronics")
	if err != nil {
		return err
	}
	if _, err := s.ensureCategory(ctx, "CAT-DAILY", "Daily Essentials"); err != nil {
		return err
	}
	if _, err := s.ensureCategory(ctx, "CAT-TEST", "Test"); err != nil {
		return err
	}

	wh, err := s.ensureWarehouse(ctx)
	if err != nil {
		return err
	}
	if err := s.ensureCounterparties(ctx); err != nil {
		return err
	}

	iphone, err := s.ensureProduct(ctx, "IPHONE15-PRO", "iPhone 15 Pro", types.MustMoney("8999.00"), electronics)
	if err != nil {
		return err
	}
	if _, err := s.ensureProduct(ctx, "MBA-M3", "MacBook Air M3", types.MustMoney("9999.00"), electronics); err != nil {
		return err
	}

	// Opening balance for demos; re-running resets it to the same count.
	if err := s.stock.Adjust(ctx, wh.ID, iphone.ID, 50); err != nil {
		return fmt.Errorf("set opening stock: %w", err)
	}

	return nil
}

func (s *seeder) seedAdmin(ctx context.Context) error {
	email := getEnv("ADMIN_EMAIL", "admin@example.com")
	password := getEnv("ADMIN_PASSWORD", "admin123456")

	user, err := s.users.CreateUser(ctx, email, password, "Admin User", auth.RoleAdmin)
	if err != nil {
		if appErr, ok := apperror.AsAppError(err); ok && appErr.Code == apperror.CodeDuplicate {
			s.log.Infow("admin user already exists", "email", email)
			return nil
		}
		return err
	}

	s.log.Infow("admin user created", "email", user.Email)
	return nil
}

func (s *seeder) ensureCategory(ctx context.Context, code, name string) (*category.Category, error) {
	existing, err := s.categories.GetByCode(ctx, code)
	if err == nil {
		return existing, nil
	}
	if !apperror.IsNotFound(err) {
		return nil, err
	}

	c := category.NewCategory(code, name)
	if err := s.categories.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create category %s: %w", code, err)
	}
	s.log.Infow("category created", "code", code, "name", name)
	return c, nil
}

func (s *seeder) ensureWarehouse(ctx context.Context) (*warehouse.Warehouse, error) {
	const code = "WH-A"

	existing, err := s.warehouses.GetByCode(ctx, code)
	if err == nil {
		return existing, nil
	}
	if !apperror.IsNotFound(err) {
		return nil, err
	}

	wh := warehouse.NewWarehouse(code, "Main Warehouse A")
	wh.Location = "Beijing"
	wh.IsDefault = true
	if err := s.warehouses.Create(ctx, wh); err != nil {
		return nil, fmt.Errorf("create warehouse: %w", err)
	}
	s.log.Infow("warehouse created", "code", code)
	return wh, nil
}

func (s *seeder) ensureCounterparties(ctx context.Context) error {
	if _, err := s.suppliers.GetByCode(ctx, "SUP-GLOBALTECH"); apperror.IsNotFound(err) {
		sup := supplier.NewSupplier("SUP-GLOBALTECH", "Global Tech Inc.")
		sup.Contact = "John Doe"
		sup.Phone = "123456789"
		sup.Email = "contact@globaltech.com"
		if err := s.suppliers.Create(ctx, sup); err != nil {
			return fmt.Errorf("create supplier: %w", err)
		}
		s.log.Infow("supplier created", "code", sup.Code)
	} else if err != nil {
		return err
	}

	if _, err := s.customers.GetByCode(ctx, "CUS-SMARTRETAIL"); apperror.IsNotFound(err) {
		cust := customer.NewCustomer("CUS-SMARTRETAIL", "Smart Retail Corp")
		cust.Contact = "Jane Smith"
		cust.Phone = "987654321"
		cust.Email = "info@smartretail.com"
		if err := s.customers.Create(ctx, cust); err != nil {
			return fmt.Errorf("create customer: %w", err)
		}
		s.log.Infow("customer created", "code", cust.Code)
	} else if err != nil {
		return err
	}

	return nil
}

func (s *seeder) ensureProduct(ctx context.Context, sku, name string, price types.Money, cat *category.Category) (*product.Product, error) {
	existing, err := s.products.GetByCode(ctx, sku)
	if err == nil {
		return existing, nil
	}
	if !apperror.IsNotFound(err) {
		return nil, err
	}

	p := product.NewProduct(sku, name, "pcs", price, cat.ID)
	if err := s.products.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create product %s: %w", sku, err)
	}
	s.log.Infow("product created", "sku", sku, "name", name)
	return p, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func mustEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		fmt.Printf("required environment variable %s not set\n", key)
		os.Exit(1)
	}
	return value
}
