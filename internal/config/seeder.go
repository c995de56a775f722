package config

import (
	"log"

	"loanconv-backoffice/internal/adapters/persistence/models"
	"loanconv-backoffice/internal/pkg/password"

	"gorm.io/gorm"
)

// Permission names granted to back-office staff.
const (
	PermApproveLoan      = "APPROVE_LOAN"
	PermRejectLoan       = "REJECT_LOAN"
	PermManageProducts   = "MANAGE_PRODUCTS"
	PermManageUsers      = "MANAGE_USERS"
	PermDisburseLoan     = "DISBURSE_LOAN"
	PermViewReports      = "VIEW_REPORTS"
	PermManageSystemData = "MANAGE_SYSTEM_DATA"
)

// Seeder handles database seeding
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// Run executes all seeders. Each step is idempotent, so the seeder runs
// safely on every startup.
func (s *Seeder) Run() error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedPermissions(); err != nil {
		return err
	}
	if err := s.seedRoles(); err != nil {
		return err
	}
	if err := s.seedAdminUser(); err != nil {
		log.Printf("⚠️ Admin seeder skipped: %v", err)
	}
	if err := s.seedSystemConfigurations(); err != nil {
		return err
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedPermissions ensures every known permission exists
func (s *Seeder) seedPermissions() error {
	permissions := []models.Permission{
		{Name: PermApproveLoan, Description: "Approve loan applications"},
		{Name: PermRejectLoan, Description: "Reject loan applications"},
		{Name: PermManageProducts, Description: "Create and update loan products"},
		{Name: PermManageUsers, Description: "Manage user accounts, roles and permissions"},
		{Name: PermDisburseLoan, Description: "Record and void disbursement transactions"},
		{Name: PermViewReports, Description: "View portfolio reports"},
		{Name: PermManageSystemData, Description: "Manage system configuration entries"},
	}

	for _, p := range permissions {
		if err := s.db.Where(models.Permission{Name: p.Name}).FirstOrCreate(&p).Error; err != nil {
			return err
		}
	}
	return nil
}

// seedRoles ensures the built-in ADMIN and USER roles exist. ADMIN gets
// every permission; USER gets none and relies on ownership checks.
func (s *Seeder) seedRoles() error {
	var allPermissions []models.Permission
	if err := s.db.Find(&allPermissions).Error; err != nil {
		return err
	}

	admin := models.Role{Name: "ADMIN", Description: "Back-office administrator"}
	if err := s.db.Where(models.Role{Name: admin.Name}).FirstOrCreate(&admin).Error; err != nil {
		return err
	}
	if err := s.db.Model(&admin).Association("Permissions").Replace(allPermissions); err != nil {
		return err
	}

	user := models.Role{Name: "USER", Description: "Loan applicant"}
	return s.db.Where(models.Role{Name: user.Name}).FirstOrCreate(&user).Error
}

// seedAdminUser seeds a default admin account
// This is for development/testing only
// In production, create admin through secure process
func (s *Seeder) seedAdminUser() error {
	var count int64
	s.db.Model(&models.User{}).Where("role_name = ?", "ADMIN").Count(&count)
	if count > 0 {
		return nil // Admin already exists
	}

	hashedPassword, err := password.Hash("admin123456")
	if err != nil {
		return err
	}

	roleName := "ADMIN"
	admin := &models.User{
		Email:         "admin@loanconv.local",
		Password:      hashedPassword,
		FullName:      "System Administrator",
		AccountStatus: models.AccountStatusActive,
		RoleName:      &roleName,
	}

	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("✅ Admin user created: %s", admin.Email)
	return nil
}

// seedSystemConfigurations seeds operational defaults
func (s *Seeder) seedSystemConfigurations() error {
	configs := []models.SystemConfiguration{
		{ConfigKey: "MAX_ACTIVE_APPLICATIONS_PER_USER", ConfigValue: "3", Description: "Maximum concurrent open applications per applicant"},
		{ConfigKey: "DOCUMENT_MAX_SIZE_MB", ConfigValue: "10", Description: "Maximum upload size for application documents"},
		{ConfigKey: "SUPPORT_EMAIL", ConfigValue: "support@loanconv.local", Description: "Contact address shown to applicants"},
	}

	for _, c := range configs {
		if err := s.db.Where(models.SystemConfiguration{ConfigKey: c.ConfigKey}).FirstOrCreate(&c).Error; err != nil {
			return err
		}
	}
	return nil
}
