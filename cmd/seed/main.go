// Command seed populates a development database with fixture data. It reads
// an optional YAML file and can top up the catalog with generated records.
//
// Usage:
//
//	seed -file fixtures.yaml
//	seed -fake 25
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"labportal_backend/internal/auth/password"
	authrepo "labportal_backend/internal/auth/repository"
	catrepo "labportal_backend/internal/catalog/repository"
	clirepo "labportal_backend/internal/clients/repository"
	suprepo "labportal_backend/internal/suppliers/repository"
	"labportal_backend/migrations"
	"labportal_backend/platform/apperr"
	"labportal_backend/platform/config"
	"labportal_backend/platform/db"
	"labportal_backend/platform/logger"
)

type fixtures struct {
	Users []struct {
		Email       string `yaml:"email"`
		DisplayName string `yaml:"displayName"`
		Password    string `yaml:"password"`
	} `yaml:"users"`
	Suppliers []struct {
		Name    string `yaml:"name"`
		Company string `yaml:"company"`
		Phone   string `yaml:"phone"`
		Email   string `yaml:"email"`
		RFC     string `yaml:"rfc"`
		Country string `yaml:"country"`
		Address string `yaml:"address"`
	} `yaml:"suppliers"`
	Products []struct {
		Code            string `yaml:"code"`
		Name            string `yaml:"name"`
		Specification   string `yaml:"specification"`
		UnitPrice       string `yaml:"unitPrice"`
		StockQuantity   int    `yaml:"stockQuantity"`
		SupplierCompany string `yaml:"supplierCompany"`
	} `yaml:"products"`
	Clients []struct {
		Name    string `yaml:"name"`
		Company string `yaml:"company"`
		Phone   string `yaml:"phone"`
		Email   string `yaml:"email"`
		Address string `yaml:"address"`
	} `yaml:"clients"`
}

func main() {
	file := flag.String("file", "", "YAML fixtures file to load")
	fake := flag.Int("fake", 0, "number of generated suppliers, products and clients to add")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	ctx := context.Background()

	if err := db.RunMigrations(ctx, cfg, migrations.FS, "."); err != nil {
		log.Error("failed to run database migrations", "error", err)
		os.Exit(1)
	}

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	users := authrepo.New(pool)
	suppliers := suprepo.New(pool)
	products := catrepo.New(pool)
	clients := clirepo.New(pool)

	if *file != "" {
		data, err := os.ReadFile(*file)
		if err != nil {
			log.Error("failed to read fixtures file", "file", *file, "error", err)
			os.Exit(1)
		}
		var fx fixtures
		if err := yaml.Unmarshal(data, &fx); err != nil {
			log.Error("failed to parse fixtures file", "file", *file, "error", err)
			os.Exit(1)
		}
		if err := loadFixtures(ctx, log, fx, users, suppliers, products, clients); err != nil {
			log.Error("failed to load fixtures", "error", err)
			os.Exit(1)
		}
	}

	if *fake > 0 {
		if err := generateFake(ctx, log, *fake, suppliers, products, clients); err != nil {
			log.Error("failed to generate fake data", "error", err)
			os.Exit(1)
		}
	}

	log.Info("seeding complete")
}

func loadFixtures(
	ctx context.Context,
	log *logger.Logger,
	fx fixtures,
	users *authrepo.Repository,
	suppliers *suprepo.Repo,
	products catrepo.Repository,
	clients *clirepo.Repo,
) error {
	for _, u := range fx.Users {
		_, err := users.GetUserByEmail(ctx, strings.ToLower(u.Email))
		if err == nil {
			log.Info("user already exists, skipping", "email", u.Email)
			continue
		}
		var appErr *apperr.Error
		if !errors.As(err, &appErr) || appErr.Kind != apperr.KindNotFound {
			return fmt.Errorf("check user %s: %w", u.Email, err)
		}

		hash, err := password.Hash(u.Password)
		if err != nil {
			return fmt.Errorf("hash password for %s: %w", u.Email, err)
		}
		if _, err := users.CreateUser(ctx, strings.ToLower(u.Email), u.DisplayName, hash); err != nil {
			return fmt.Errorf("create user %s: %w", u.Email, err)
		}
		log.Info("user created", "email", u.Email)
	}

	supplierIDs := map[string]suprepo.Supplier{}
	for _, s := range fx.Suppliers {
		created, err := suppliers.Create(ctx, suprepo.CreateSupplierParams{
			Name:    s.Name,
			Company: s.Company,
			Phone:   s.Phone,
			Email:   s.Email,
			RFC:     s.RFC,
			Country: s.Country,
			Address: s.Address,
		})
		if err != nil {
			return fmt.Errorf("create supplier %s: %w", s.Company, err)
		}
		supplierIDs[s.Company] = created
		log.Info("supplier created", "company", s.Company)
	}

	for _, p := range fx.Products {
		price, err := decimal.NewFromString(p.UnitPrice)
		if err != nil {
			return fmt.Errorf("product %s: invalid unit price %q: %w", p.Code, p.UnitPrice, err)
		}
		params := catrepo.CreateProductParams{
			Code:          p.Code,
			Name:          p.Name,
			UnitPrice:     price,
			StockQuantity: p.StockQuantity,
		}
		if p.Specification != "" {
			spec := p.Specification
			params.Specification = &spec
		}
		if p.SupplierCompany != "" {
			s, ok := supplierIDs[p.SupplierCompany]
			if !ok {
				return fmt.Errorf("product %s references unknown supplier %q", p.Code, p.SupplierCompany)
			}
			id := s.ID
			params.SupplierID = &id
		}
		if _, err := products.CreateProduct(ctx, params); err != nil {
			return fmt.Errorf("create product %s: %w", p.Code, err)
		}
		log.Info("product created", "code", p.Code)
	}

	for _, c := range fx.Clients {
		if _, err := clients.Create(ctx, clirepo.CreateClientParams{
			Name:    c.Name,
			Company: c.Company,
			Phone:   c.Phone,
			Email:   c.Email,
			Address: c.Address,
		}); err != nil {
			return fmt.Errorf("create client %s: %w", c.Name, err)
		}
		log.Info("client created", "name", c.Name)
	}

	return nil
}

func generateFake(
	ctx context.Context,
	log *logger.Logger,
	count int,
	suppliers *suprepo.Repo,
	products catrepo.Repository,
	clients *clirepo.Repo,
) error {
	for i := 0; i < count; i++ {
		supplier, err := suppliers.Create(ctx, suprepo.CreateSupplierParams{
			Name:    gofakeit.Name(),
			Company: gofakeit.Company(),
			Phone:   "+52" + gofakeit.Numerify("##########"),
			Email:   gofakeit.Email(),
			RFC:     gofakeit.Regex(`[A-Z]{4}[0-9]{6}[A-Z0-9]{3}`),
			Country: gofakeit.Country(),
			Address: gofakeit.Address().Address,
		})
		if err != nil {
			return fmt.Errorf("create fake supplier: %w", err)
		}

		price := decimal.NewFromFloat(gofakeit.Price(50, 25000)).Round(2)
		spec := gofakeit.Sentence(8)
		if _, err := products.CreateProduct(ctx, catrepo.CreateProductParams{
			Code:          gofakeit.Regex(`[A-Z]{3}-[0-9]{4}`),
			Name:          gofakeit.ProductName(),
			Specification: &spec,
			UnitPrice:     price,
			StockQuantity: gofakeit.Number(0, 200),
			SupplierID:    &supplier.ID,
		}); err != nil {
			return fmt.Errorf("create fake product: %w", err)
		}

		if _, err := clients.Create(ctx, clirepo.CreateClientParams{
			Name:    gofakeit.Name(),
			Company: gofakeit.Company(),
			Phone:   "+52" + gofakeit.Numerify("##########"),
			Email:   gofakeit.Email(),
			Address: gofakeit.Address().Address,
		}); err != nil {
			return fmt.Errorf("create fake client: %w", err)
		}
	}

	log.Info("fake records generated", "count", count)
	return nil
}
