package services

import (
	"context"
	"sync"
	"time"

	"loanconv-backoffice/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// In-memory repository fakes. They mirror the GORM repositories' contract,
// including gorm.ErrRecordNotFound for missing rows, and return copies so
// services must call Update to persist mutations.

type fakeUserRepo struct {
	mu     sync.Mutex
	nextID uint
	users  map[uint]models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uint]models.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	user.ID = r.nextID
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uint) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &user, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	if err == gorm.ErrRecordNotFound {
		return false, nil
	}
	return err == nil, err
}

func (r *fakeUserRepo) Update(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) List(_ context.Context, offset, limit int) ([]models.User, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var users []models.User
	for id := uint(1); id <= r.nextID; id++ {
		if user, ok := r.users[id]; ok {
			users = append(users, user)
		}
	}
	total := int64(len(users))
	if offset > len(users) {
		offset = len(users)
	}
	end := offset + limit
	if end > len(users) {
		end = len(users)
	}
	return users[offset:end], total, nil
}

type fakeRoleRepo struct {
	mu    sync.Mutex
	roles map[string]models.Role
}

func newFakeRoleRepo() *fakeRoleRepo {
	return &fakeRoleRepo{roles: make(map[string]models.Role)}
}

func (r *fakeRoleRepo) Create(_ context.Context, role *models.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.roles[role.Name] = *role
	return nil
}

func (r *fakeRoleRepo) GetByName(_ context.Context, name string) (*models.Role, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	role, ok := r.roles[name]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &role, nil
}

func (r *fakeRoleRepo) ReplacePermissions(_ context.Context, role *models.Role, permissions []models.Permission) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := r.roles[role.Name]
	stored.Permissions = permissions
	r.roles[role.Name] = stored
	return nil
}

func (r *fakeRoleRepo) Delete(_ context.Context, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.roles, name)
	return nil
}

func (r *fakeRoleRepo) List(_ context.Context) ([]models.Role, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var roles []models.Role
	for _, role := range r.roles {
		roles = append(roles, role)
	}
	return roles, nil
}

type fakePermissionRepo struct {
	mu          sync.Mutex
	permissions map[string]models.Permission
}

func newFakePermissionRepo() *fakePermissionRepo {
	return &fakePermissionRepo{permissions: make(map[string]models.Permission)}
}

func (r *fakePermissionRepo) Create(_ context.Context, permission *models.Permission) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.permissions[permission.Name] = *permission
	return nil
}

func (r *fakePermissionRepo) GetByName(_ context.Context, name string) (*models.Permission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	permission, ok := r.permissions[name]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &permission, nil
}

func (r *fakePermissionRepo) Delete(_ context.Context, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.permissions, name)
	return nil
}

func (r *fakePermissionRepo) List(_ context.Context) ([]models.Permission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var permissions []models.Permission
	for _, permission := range r.permissions {
		permissions = append(permissions, permission)
	}
	return permissions, nil
}

type fakeTokenRepo struct {
	mu      sync.Mutex
	revoked map[string]time.Time
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{revoked: make(map[string]time.Time)}
}

func (r *fakeTokenRepo) Save(_ context.Context, token *models.InvalidatedToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.revoked[token.ID]; !ok {
		r.revoked[token.ID] = token.ExpirationTime
	}
	return nil
}

func (r *fakeTokenRepo) Exists(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.revoked[id]
	return ok, nil
}

func (r *fakeTokenRepo) DeleteExpired(_ context.Context, before time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var removed int64
	for id, exp := range r.revoked {
		if exp.Before(before) {
			delete(r.revoked, id)
			removed++
		}
	}
	return removed, nil
}

type fakeVerificationTokenRepo struct {
	mu     sync.Mutex
	nextID uint
	tokens map[string]models.VerificationToken
}

func newFakeVerificationTokenRepo() *fakeVerificationTokenRepo {
	return &fakeVerificationTokenRepo{tokens: make(map[string]models.VerificationToken)}
}

func (r *fakeVerificationTokenRepo) Create(_ context.Context, token *models.VerificationToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	token.ID = r.nextID
	r.tokens[token.UUID] = *token
	return nil
}

func (r *fakeVerificationTokenRepo) GetByUUID(_ context.Context, uuid string) (*models.VerificationToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	token, ok := r.tokens[uuid]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &token, nil
}

func (r *fakeVerificationTokenRepo) Update(_ context.Context, token *models.VerificationToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens[token.UUID] = *token
	return nil
}

type fakeProductRepo struct {
	mu       sync.Mutex
	nextID   uint
	products map[uint]models.LoanProduct
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[uint]models.LoanProduct)}
}

func (r *fakeProductRepo) Create(_ context.Context, product *models.LoanProduct) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	product.ID = r.nextID
	r.products[product.ID] = *product
	return nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id uint) (*models.LoanProduct, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	product, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &product, nil
}

func (r *fakeProductRepo) Update(_ context.Context, product *models.LoanProduct) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[product.ID] = *product
	return nil
}

func (r *fakeProductRepo) List(_ context.Context, name, status string, offset, limit int) ([]models.LoanProduct, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var products []models.LoanProduct
	for id := uint(1); id <= r.nextID; id++ {
		product, ok := r.products[id]
		if !ok {
			continue
		}
		if status != "" && product.Status != status {
			continue
		}
		products = append(products, product)
	}
	total := int64(len(products))
	if offset > len(products) {
		offset = len(products)
	}
	end := offset + limit
	if end > len(products) {
		end = len(products)
	}
	return products[offset:end], total, nil
}

type fakeAppRepo struct {
	mu           sync.Mutex
	nextID       uint
	applications map[uint]models.LoanApplication
}

func newFakeAppRepo() *fakeAppRepo {
	return &fakeAppRepo{applications: make(map[uint]models.LoanApplication)}
}

func (r *fakeAppRepo) Create(_ context.Context, application *models.LoanApplication) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	application.ID = r.nextID
	r.applications[application.ID] = *application
	return nil
}

func (r *fakeAppRepo) GetByID(_ context.Context, id uint) (*models.LoanApplication, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	application, ok := r.applications[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &application, nil
}

func (r *fakeAppRepo) GetByIDForUpdate(ctx context.Context, id uint) (*models.LoanApplication, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeAppRepo) Update(_ context.Context, application *models.LoanApplication) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.applications[application.ID] = *application
	return nil
}

func (r *fakeAppRepo) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.applications, id)
	return nil
}

func (r *fakeAppRepo) List(_ context.Context, status string, offset, limit int) ([]models.LoanApplication, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var applications []models.LoanApplication
	for id := uint(1); id <= r.nextID; id++ {
		application, ok := r.applications[id]
		if !ok {
			continue
		}
		if status != "" && application.Status != status {
			continue
		}
		applications = append(applications, application)
	}
	total := int64(len(applications))
	if offset > len(applications) {
		offset = len(applications)
	}
	end := offset + limit
	if end > len(applications) {
		end = len(applications)
	}
	return applications[offset:end], total, nil
}

func (r *fakeAppRepo) ListByUserID(_ context.Context, userID uint, offset, limit int) ([]models.LoanApplication, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var applications []models.LoanApplication
	for id := uint(1); id <= r.nextID; id++ {
		if application, ok := r.applications[id]; ok && application.UserID == userID {
			applications = append(applications, application)
		}
	}
	total := int64(len(applications))
	if offset > len(applications) {
		offset = len(applications)
	}
	end := offset + limit
	if end > len(applications) {
		end = len(applications)
	}
	return applications[offset:end], total, nil
}

type fakeDisbRepo struct {
	mu           sync.Mutex
	nextID       uint
	transactions map[uint]models.DisbursementTransaction
}

func newFakeDisbRepo() *fakeDisbRepo {
	return &fakeDisbRepo{transactions: make(map[uint]models.DisbursementTransaction)}
}

func (r *fakeDisbRepo) Create(_ context.Context, tx *models.DisbursementTransaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	tx.ID = r.nextID
	r.transactions[tx.ID] = *tx
	return nil
}

func (r *fakeDisbRepo) GetByID(_ context.Context, id uint) (*models.DisbursementTransaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	tx, ok := r.transactions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &tx, nil
}

func (r *fakeDisbRepo) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.transactions, id)
	return nil
}

func (r *fakeDisbRepo) List(_ context.Context, offset, limit int) ([]models.DisbursementTransaction, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var transactions []models.DisbursementTransaction
	for id := uint(1); id <= r.nextID; id++ {
		if tx, ok := r.transactions[id]; ok {
			transactions = append(transactions, tx)
		}
	}
	total := int64(len(transactions))
	if offset > len(transactions) {
		offset = len(transactions)
	}
	end := offset + limit
	if end > len(transactions) {
		end = len(transactions)
	}
	return transactions[offset:end], total, nil
}

func (r *fakeDisbRepo) ListByApplicationID(_ context.Context, applicationID uint) ([]models.DisbursementTransaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var transactions []models.DisbursementTransaction
	for id := uint(1); id <= r.nextID; id++ {
		if tx, ok := r.transactions[id]; ok && tx.ApplicationID == applicationID {
			transactions = append(transactions, tx)
		}
	}
	return transactions, nil
}

func (r *fakeDisbRepo) ListByUserID(_ context.Context, userID uint, offset, limit int) ([]models.DisbursementTransaction, int64, error) {
	return nil, 0, nil
}

func (r *fakeDisbRepo) TotalByApplicationID(_ context.Context, applicationID uint) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var total int64
	for _, tx := range r.transactions {
		if tx.ApplicationID == applicationID {
			total += tx.Amount
		}
	}
	return total, nil
}

type fakeDocRepo struct {
	mu        sync.Mutex
	nextID    uint
	documents map[uint]models.Document
}

func newFakeDocRepo() *fakeDocRepo {
	return &fakeDocRepo{documents: make(map[uint]models.Document)}
}

func (r *fakeDocRepo) Create(_ context.Context, document *models.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	document.ID = r.nextID
	r.documents[document.ID] = *document
	return nil
}

func (r *fakeDocRepo) GetByID(_ context.Context, id uint) (*models.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	document, ok := r.documents[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &document, nil
}

func (r *fakeDocRepo) ListByApplicationID(_ context.Context, applicationID uint) ([]models.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var documents []models.Document
	for id := uint(1); id <= r.nextID; id++ {
		if document, ok := r.documents[id]; ok && document.ApplicationID == applicationID {
			documents = append(documents, document)
		}
	}
	return documents, nil
}

func (r *fakeDocRepo) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.documents, id)
	return nil
}

type fakeNotificationRepo struct {
	mu            sync.Mutex
	nextID        uint
	notifications map[uint]models.Notification
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{notifications: make(map[uint]models.Notification)}
}

func (r *fakeNotificationRepo) Create(_ context.Context, notification *models.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	notification.ID = r.nextID
	r.notifications[notification.ID] = *notification
	return nil
}

func (r *fakeNotificationRepo) GetByID(_ context.Context, id uint) (*models.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	notification, ok := r.notifications[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &notification, nil
}

func (r *fakeNotificationRepo) ListByUserID(_ context.Context, userID uint, offset, limit int) ([]models.Notification, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var notifications []models.Notification
	for id := uint(1); id <= r.nextID; id++ {
		if notification, ok := r.notifications[id]; ok && notification.UserID == userID {
			notifications = append(notifications, notification)
		}
	}
	total := int64(len(notifications))
	if offset > len(notifications) {
		offset = len(notifications)
	}
	end := offset + limit
	if end > len(notifications) {
		end = len(notifications)
	}
	return notifications[offset:end], total, nil
}

func (r *fakeNotificationRepo) CountUnreadByUserID(_ context.Context, userID uint) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, notification := range r.notifications {
		if notification.UserID == userID && !notification.IsRead {
			count++
		}
	}
	return count, nil
}

func (r *fakeNotificationRepo) Update(_ context.Context, notification *models.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notifications[notification.ID] = *notification
	return nil
}

func (r *fakeNotificationRepo) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.notifications, id)
	return nil
}

func (r *fakeNotificationRepo) MarkAllReadByUserID(_ context.Context, userID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, notification := range r.notifications {
		if notification.UserID == userID {
			notification.IsRead = true
			r.notifications[id] = notification
		}
	}
	return nil
}

// fakeUnitOfWork runs the function directly; the fakes are their own
// source of truth, so there is nothing to roll back.
type fakeUnitOfWork struct{}

func (fakeUnitOfWork) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type sentMail struct {
	To      string
	Subject string
	Body    string
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
}

func (m *fakeMailer) Send(_ context.Context, to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMail{To: to, Subject: subject, Body: body})
	return nil
}
