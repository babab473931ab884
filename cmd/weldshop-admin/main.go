package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/bitfantasy/weldshop/internal/config"
	"github.com/bitfantasy/weldshop/internal/entity"
	"github.com/bitfantasy/weldshop/internal/service"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var rootCmd = &cobra.Command{
	Use:   "weldshop-admin",
	Short: "Weldshop database administration",
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run schema migrations",
	Run: func(cmd *cobra.Command, args []string) {
		db := mustOpenDB()
		if err := entity.AutoMigrate(db); err != nil {
			log.Fatalf("migrate: %v", err)
		}
		fmt.Println("Migrations applied")
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load sample data and default users",
	Run: func(cmd *cobra.Command, args []string) {
		db := mustOpenDB()
		if err := entity.AutoMigrate(db); err != nil {
			log.Fatalf("migrate: %v", err)
		}
		if err := seed(db); err != nil {
			log.Fatalf("seed: %v", err)
		}
		fmt.Println("Sample data loaded")
	},
}

func main() {
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded .env file")
	}

	rootCmd.AddCommand(migrateCmd, seedCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func mustOpenDB() *gorm.DB {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.User,
		cfg.Database.Password, cfg.Database.DBName, cfg.Database.SSLMode,
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}
	return db
}

func dec(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}

func date(value string) *time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil
	}
	return &t
}

// seed 装入示例客户/库存/工单/报价/发票与默认用户，已有同名数据时跳过
func seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&entity.Customer{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		fmt.Println("Customers already present, skipping sample data")
		return seedUsers(db)
	}

	customers := []entity.Customer{
		{Name: "Alberta Steel Works", Email: "info@albertasteelworks.ca", Phone: "(403) 555-0101", Address: "1234 16th Ave NW, Calgary, AB T2M 0J6", Notes: "Large industrial client, prefers TIG welding"},
		{Name: "Calgary Metal Fabrication", Email: "orders@calgarymetal.ca", Phone: "(403) 555-0102", Address: "5678 Barlow Trail SE, Calgary, AB T2C 4K8", Notes: "Regular customer, specializes in custom railings"},
		{Name: "Rocky Mountain Welding", Email: "contact@rockymountainwelding.ca", Phone: "(403) 555-0103", Address: "9012 Macleod Trail SW, Calgary, AB T2H 0K4", Notes: "Oil and gas industry work"},
		{Name: "Precision Welding Solutions", Email: "info@precisionwelding.ca", Phone: "(403) 555-0104", Address: "3456 Crowchild Trail NW, Calgary, AB T3B 1Y1", Notes: "High-end custom work, very particular about quality"},
		{Name: "Calgary Industrial Services", Email: "service@calgaryindustrial.ca", Phone: "(403) 555-0105", Address: "7890 Deerfoot Trail NE, Calgary, AB T2E 6T3", Notes: "Heavy machinery repair and maintenance"},
		{Name: "Mountain View Welding", Email: "hello@mountainviewwelding.ca", Phone: "(403) 555-0106", Address: "2345 Glenmore Trail SW, Calgary, AB T2V 4T6", Notes: "Residential and commercial projects"},
		{Name: "Alberta Custom Metals", Email: "sales@albertacustom.ca", Phone: "(403) 555-0107", Address: "4567 Stoney Trail NW, Calgary, AB T3K 4M8", Notes: "Artistic metalwork and sculptures"},
		{Name: "Calgary Structural Steel", Email: "info@calgarystructural.ca", Phone: "(403) 555-0108", Address: "6789 14th Street NW, Calgary, AB T2K 1H4", Notes: "Large structural steel projects"},
		{Name: "Western Welding Works", Email: "contact@westernwelding.ca", Phone: "(403) 555-0109", Address: "8901 17th Avenue SE, Calgary, AB T2A 0V7", Notes: "Agricultural equipment repair"},
		{Name: "Calgary Metal Arts", Email: "info@calgarymetalarts.ca", Phone: "(403) 555-0110", Address: "1234 Kensington Road NW, Calgary, AB T2N 3P7", Notes: "Decorative metalwork and gates"},
	}
	for i := range customers {
		customers[i].ID = uuid.New().String()
	}
	if err := db.Create(&customers).Error; err != nil {
		return fmt.Errorf("seed customers: %w", err)
	}

	inventory := []entity.InventoryItem{
		{Name: "ER70S-6 MIG Wire", Description: "0.035\" diameter, 10lb spool", Category: entity.CategoryWeldingWire, SKU: "MIG-035-10LB", Quantity: 25, MinQuantity: 5, UnitPrice: dec(45.99), Supplier: "Lincoln Electric", Location: "Warehouse A"},
		{Name: "ER308L TIG Rods", Description: "1/16\" diameter, 10lb box", Category: entity.CategoryWeldingWire, SKU: "TIG-308L-1/16", Quantity: 15, MinQuantity: 3, UnitPrice: dec(89.99), Supplier: "Miller Electric", Location: "Warehouse A"},
		{Name: "ER316L TIG Rods", Description: "3/32\" diameter, 10lb box", Category: entity.CategoryWeldingWire, SKU: "TIG-316L-3/32", Quantity: 12, MinQuantity: 2, UnitPrice: dec(95.99), Supplier: "Miller Electric", Location: "Warehouse A"},
		{Name: "6011 Electrodes", Description: "1/8\" diameter, 50lb box", Category: entity.CategoryStickElectrodes, SKU: "STICK-6011-1/8", Quantity: 8, MinQuantity: 2, UnitPrice: dec(125.99), Supplier: "Lincoln Electric", Location: "Warehouse B"},
		{Name: "7018 Electrodes", Description: "3/32\" diameter, 50lb box", Category: entity.CategoryStickElectrodes, SKU: "STICK-7018-3/32", Quantity: 10, MinQuantity: 3, UnitPrice: dec(145.99), Supplier: "Lincoln Electric", Location: "Warehouse B"},
		{Name: "Argon Gas Cylinder", Description: "80 cu ft, industrial grade", Category: entity.CategoryGas, SKU: "GAS-ARGON-80", Quantity: 6, MinQuantity: 2, UnitPrice: dec(89.99), Supplier: "Praxair", Location: "Gas Storage"},
		{Name: "CO2 Gas Cylinder", Description: "20 lb, food grade", Category: entity.CategoryGas, SKU: "GAS-CO2-20LB", Quantity: 4, MinQuantity: 1, UnitPrice: dec(45.99), Supplier: "Praxair", Location: "Gas Storage"},
		{Name: "Argon/CO2 Mix", Description: "75/25 mix, 80 cu ft", Category: entity.CategoryGas, SKU: "GAS-MIX-75/25", Quantity: 8, MinQuantity: 2, UnitPrice: dec(79.99), Supplier: "Praxair", Location: "Gas Storage"},
		{Name: "Welding Gloves", Description: "Heavy duty, size L", Category: entity.CategorySafetyEquipment, SKU: "SAFETY-GLOVES-L", Quantity: 20, MinQuantity: 5, UnitPrice: dec(24.99), Supplier: "Miller Electric", Location: "Safety Storage"},
		{Name: "Welding Helmet", Description: "Auto-darkening, premium", Category: entity.CategorySafetyEquipment, SKU: "SAFETY-HELMET-AD", Quantity: 8, MinQuantity: 2, UnitPrice: dec(189.99), Supplier: "Lincoln Electric", Location: "Safety Storage"},
		{Name: "Grinding Discs", Description: "4.5\" diameter, pack of 10", Category: entity.CategoryConsumables, SKU: "CONS-GRIND-4.5", Quantity: 30, MinQuantity: 10, UnitPrice: dec(15.99), Supplier: "Norton", Location: "Consumables"},
		{Name: "Cutting Discs", Description: "4.5\" diameter, pack of 5", Category: entity.CategoryConsumables, SKU: "CONS-CUT-4.5", Quantity: 25, MinQuantity: 8, UnitPrice: dec(12.99), Supplier: "Norton", Location: "Consumables"},
		{Name: "Wire Brushes", Description: "Stainless steel, pack of 5", Category: entity.CategoryConsumables, SKU: "CONS-BRUSH-SS", Quantity: 40, MinQuantity: 15, UnitPrice: dec(8.99), Supplier: "Norton", Location: "Consumables"},
		{Name: "Anti-Spatter Spray", Description: "16 oz can", Category: entity.CategoryConsumables, SKU: "CONS-ANTISPATTER", Quantity: 15, MinQuantity: 5, UnitPrice: dec(12.99), Supplier: "Lincoln Electric", Location: "Consumables"},
		{Name: "Steel Plate", Description: "1/4\" x 4\" x 8\", A36", Category: entity.CategoryRawMaterials, SKU: "MAT-STEEL-1/4-4X8", Quantity: 50, MinQuantity: 10, UnitPrice: dec(89.99), Supplier: "Alberta Steel", Location: "Material Storage"},
		{Name: "Aluminum Sheet", Description: "1/8\" x 4\" x 8\", 6061", Category: entity.CategoryRawMaterials, SKU: "MAT-AL-1/8-4X8", Quantity: 30, MinQuantity: 5, UnitPrice: dec(125.99), Supplier: "Aluminum Supply Co", Location: "Material Storage"},
		{Name: "Stainless Steel Tube", Description: "1\" x 0.065\", 304", Category: entity.CategoryRawMaterials, SKU: "MAT-SS-TUBE-1X065", Quantity: 100, MinQuantity: 20, UnitPrice: dec(15.99), Supplier: "Stainless Supply", Location: "Material Storage"},
		{Name: "Mild Steel Angle", Description: "2\" x 2\" x 1/4\", 20ft", Category: entity.CategoryRawMaterials, SKU: "MAT-ANGLE-2X2X1/4", Quantity: 25, MinQuantity: 5, UnitPrice: dec(45.99), Supplier: "Alberta Steel", Location: "Material Storage"},
	}
	for i := range inventory {
		inventory[i].ID = uuid.New().String()
		inventory[i].Unit = "qty"
	}
	if err := db.Create(&inventory).Error; err != nil {
		return fmt.Errorf("seed inventory: %w", err)
	}

	projects := []entity.Project{
		{CustomerID: &customers[0].ID, Title: "Industrial Railing System", Description: "Custom safety railings for factory floor", Status: entity.ProjectStatusInProgress, Priority: "high", StartDate: date("2024-01-15"), DueDate: date("2024-02-15"), EstimatedHours: dec(40.0), ActualHours: dec(25.5), MaterialsCost: dec(1250.00), LaborRate: dec(75.00), TotalCost: dec(3162.50), Notes: "Using 316L stainless for corrosion resistance"},
		{CustomerID: &customers[1].ID, Title: "Staircase Railing", Description: "Ornamental staircase railing for residential home", Status: entity.ProjectStatusCompleted, Priority: "medium", StartDate: date("2024-01-10"), DueDate: date("2024-01-25"), EstimatedHours: dec(16.0), ActualHours: dec(14.5), MaterialsCost: dec(450.00), LaborRate: dec(75.00), TotalCost: dec(1537.50), Notes: "Customer very satisfied with finish"},
		{CustomerID: &customers[2].ID, Title: "Pipeline Repair", Description: "Emergency repair of damaged pipeline section", Status: entity.ProjectStatusPending, Priority: "high", StartDate: date("2024-02-01"), DueDate: date("2024-02-05"), EstimatedHours: dec(12.0), MaterialsCost: dec(800.00), LaborRate: dec(85.00), TotalCost: dec(1820.00), Notes: "Critical repair, needs immediate attention"},
		{CustomerID: &customers[3].ID, Title: "Custom Gate Design", Description: "Artistic driveway gate with custom scrollwork", Status: entity.ProjectStatusInProgress, Priority: "medium", StartDate: date("2024-01-20"), DueDate: date("2024-02-20"), EstimatedHours: dec(35.0), ActualHours: dec(18.0), MaterialsCost: dec(1200.00), LaborRate: dec(90.00), TotalCost: dec(2820.00), Notes: "Complex design, taking longer than estimated"},
		{CustomerID: &customers[4].ID, Title: "Machine Base Repair", Description: "Repair and reinforcement of industrial machine base", Status: entity.ProjectStatusCompleted, Priority: "high", StartDate: date("2024-01-05"), DueDate: date("2024-01-12"), EstimatedHours: dec(8.0), ActualHours: dec(7.5), MaterialsCost: dec(300.00), LaborRate: dec(75.00), TotalCost: dec(862.50), Notes: "Successfully reinforced weak points"},
	}
	for i := range projects {
		projects[i].ID = uuid.New().String()
	}
	if err := db.Create(&projects).Error; err != nil {
		return fmt.Errorf("seed projects: %w", err)
	}

	quotes := []entity.Quote{
		{CustomerID: &customers[0].ID, ProjectID: &projects[0].ID, QuoteNumber: "Q-2024-001", Title: "Industrial Railing System", Description: "Custom safety railings for factory floor", Status: entity.QuoteStatusApproved, MaterialsCost: dec(1250.00), LaborCost: dec(3000.00), TaxRate: dec(0.05), TotalAmount: dec(4462.50), ValidUntil: date("2024-02-15"), Notes: "Customer approved with minor modifications"},
		{CustomerID: &customers[1].ID, ProjectID: &projects[1].ID, QuoteNumber: "Q-2024-002", Title: "Staircase Railing", Description: "Ornamental staircase railing for residential home", Status: entity.QuoteStatusCompleted, MaterialsCost: dec(450.00), LaborCost: dec(1200.00), TaxRate: dec(0.05), TotalAmount: dec(1732.50), ValidUntil: date("2024-01-25"), Notes: "Project completed successfully"},
		{CustomerID: &customers[2].ID, ProjectID: &projects[2].ID, QuoteNumber: "Q-2024-003", Title: "Pipeline Repair", Description: "Emergency repair of damaged pipeline section", Status: entity.QuoteStatusPending, MaterialsCost: dec(800.00), LaborCost: dec(1020.00), TaxRate: dec(0.05), TotalAmount: dec(1911.00), ValidUntil: date("2024-02-05"), Notes: "Awaiting customer approval"},
	}
	for i := range quotes {
		quotes[i].ID = uuid.New().String()
	}
	if err := db.Create(&quotes).Error; err != nil {
		return fmt.Errorf("seed quotes: %w", err)
	}

	invoices := []entity.Invoice{
		{CustomerID: &customers[0].ID, ProjectID: &projects[0].ID, QuoteID: &quotes[0].ID, InvoiceNumber: "INV-2024-001", Status: entity.InvoiceStatusPaid, Subtotal: dec(4462.50), TaxAmount: dec(223.13), TotalAmount: dec(4685.63), AmountPaid: dec(4685.63), DueDate: date("2024-02-15"), PaidDate: date("2024-02-10"), PaymentMethod: "bank_transfer", Notes: "Paid early, customer satisfied"},
		{CustomerID: &customers[1].ID, ProjectID: &projects[1].ID, QuoteID: &quotes[1].ID, InvoiceNumber: "INV-2024-002", Status: entity.InvoiceStatusPaid, Subtotal: dec(1732.50), TaxAmount: dec(86.63), TotalAmount: dec(1819.13), AmountPaid: dec(1819.13), DueDate: date("2024-01-25"), PaidDate: date("2024-01-28"), PaymentMethod: "credit_card", Notes: "Paid on time"},
		{CustomerID: &customers[3].ID, ProjectID: &projects[3].ID, QuoteID: &quotes[2].ID, InvoiceNumber: "INV-2024-003", Status: entity.InvoiceStatusPartial, Subtotal: dec(4567.50), TaxAmount: dec(228.38), TotalAmount: dec(4795.88), AmountPaid: dec(2400.00), DueDate: date("2024-02-20"), PaymentMethod: "bank_transfer", Notes: "50% deposit received"},
	}
	for i := range invoices {
		invoices[i].ID = uuid.New().String()
	}
	if err := db.Create(&invoices).Error; err != nil {
		return fmt.Errorf("seed invoices: %w", err)
	}

	return seedUsers(db)
}

// seedUsers 默认登录账号，已存在则跳过
func seedUsers(db *gorm.DB) error {
	defaults := []struct {
		email    string
		name     string
		role     string
		password string
	}{
		{"manager@weldshop.ca", "Shop Manager", entity.RoleManager, "manager123"},
		{"employee@weldshop.ca", "Shop Employee", entity.RoleEmployee, "employee123"},
	}

	for _, d := range defaults {
		var count int64
		if err := db.Model(&entity.User{}).Where("email = ?", d.email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		hash, err := service.HashPassword(d.password)
		if err != nil {
			return err
		}
		user := entity.User{
			ID:           uuid.New().String(),
			Email:        d.email,
			PasswordHash: hash,
			Name:         d.name,
			Role:         d.role,
			Status:       entity.UserStatusActive,
		}
		if err := db.Create(&user).Error; err != nil {
			return fmt.Errorf("seed user %s: %w", d.email, err)
		}
		fmt.Printf("Created user %s (%s)\n", d.email, d.role)
	}
	return nil
}
