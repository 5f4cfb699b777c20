package employee

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"staffdir/internal/database"
	"staffdir/pkg/utils"
)

const TempPasswordLength = 10

var (
	ErrNotFound           = errors.New("employee not found")
	ErrDuplicate          = errors.New("employee already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type EmployeeService struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *EmployeeService {
	return &EmployeeService{db: db}
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *EmployeeService) GetByID(id uuid.UUID) (*database.Employee, error) {
	var emp database.Employee
	result := s.db.First(&emp, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, result.Error
	}
	return &emp, nil
}

func (s *EmployeeService) GetByEmail(email string) (*database.Employee, error) {
	var emp database.Employee
	result := s.db.First(&emp, "email = ?", NormalizeEmail(email))
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, result.Error
	}
	return &emp, nil
}

func (s *EmployeeService) GetByEmployeeID(employeeID string) (*database.Employee, error) {
	var emp database.Employee
	result := s.db.First(&emp, "employee_id = ?", employeeID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, result.Error
	}
	return &emp, nil
}

// Create persists a new employee with a fresh temporary credential: the
// temporary password is hashed into the permanent slot and kept verbatim
// in TempPassword so it can be mailed and used for a first signin. The
// plaintext is returned for the welcome notification.
func (s *EmployeeService) Create(emp *database.Employee) (string, error) {
	temp, err := utils.GenerateTempPassword(TempPasswordLength)
	if err != nil {
		return "", err
	}
	hash, err := utils.HashPassword(temp)
	if err != nil {
		return "", err
	}

	emp.Email = NormalizeEmail(emp.Email)
	emp.PasswordHash = hash
	emp.TempPassword = &temp
	if emp.Role == "" {
		emp.Role = database.RoleEmployee
	}

	if err := s.db.Create(emp).Error; err != nil {
		if isDuplicate(err) {
			return "", ErrDuplicate
		}
		return "", err
	}

	return temp, nil
}

func (s *EmployeeService) Update(emp *database.Employee) error {
	return s.db.Save(emp).Error
}

func (s *EmployeeService) Delete(emp *database.Employee) error {
	return s.db.Delete(emp).Error
}

func (s *EmployeeService) ListAll(limit, offset int) ([]database.Employee, error) {
	var emps []database.Employee
	result := s.db.Limit(limit).Offset(offset).Order("employee_id").Find(&emps)
	if result.Error != nil {
		return nil, result.Error
	}
	return emps, nil
}

// Authenticate resolves a login attempt against either the outstanding
// temporary password or the permanent hash. Unknown email and wrong
// password are indistinguishable to the caller.
func (s *EmployeeService) Authenticate(email, password string) (*database.Employee, error) {
	emp, err := s.GetByEmail(email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	// An outstanding temporary credential matches verbatim. Signing in
	// with it does not consume it; only a password change clears it.
	if emp.TempPassword != nil && *emp.TempPassword != "" && password == *emp.TempPassword {
		return emp, nil
	}

	if emp.PasswordHash != "" && utils.VerifyPassword(password, emp.PasswordHash) {
		return emp, nil
	}

	return nil, ErrInvalidCredentials
}

// UpdatePassword stores a new permanent password and clears any
// outstanding temporary credential. This is the only clearing point.
func (s *EmployeeService) UpdatePassword(emp *database.Employee, password string) error {
	hash, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	if err := s.db.Model(emp).Updates(map[string]any{
		"password_hash": hash,
		"temp_password": nil,
	}).Error; err != nil {
		return err
	}

	emp.PasswordHash = hash
	emp.TempPassword = nil

	return nil
}

// IssueTempCredential generates a fresh temporary password for an
// existing employee, mirroring the create path: hashed into the
// permanent slot, plaintext kept for signin and for the reset mail.
func (s *EmployeeService) IssueTempCredential(emp *database.Employee) (string, error) {
	temp, err := utils.GenerateTempPassword(TempPasswordLength)
	if err != nil {
		return "", err
	}
	hash, err := utils.HashPassword(temp)
	if err != nil {
		return "", err
	}

	if err := s.db.Model(emp).Updates(map[string]any{
		"password_hash": hash,
		"temp_password": temp,
	}).Error; err != nil {
		return "", err
	}

	emp.PasswordHash = hash
	emp.TempPassword = &temp

	return temp, nil
}

func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}
