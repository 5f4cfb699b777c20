package employee

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"staffdir/internal/database"
	"staffdir/pkg/utils"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	return db
}

func createEmployee(t *testing.T, svc *EmployeeService, employeeID, email, role string) (*database.Employee, string) {
	t.Helper()

	emp := &database.Employee{
		EmployeeID: employeeID,
		Name:       "Test Employee",
		Email:      email,
		Role:       role,
	}
	temp, err := svc.Create(emp)
	if err != nil {
		t.Fatalf("create employee: %v", err)
	}

	return emp, temp
}

func TestCreateIssuesTempCredential(t *testing.T) {
	svc := NewService(setupDB(t))

	emp, temp := createEmployee(t, svc, "E001", "alice@x.com", database.RoleEmployee)

	if emp.TempPassword == nil || *emp.TempPassword != temp {
		t.Error("expected plaintext temporary password to be stored")
	}
	if !utils.VerifyPassword(temp, emp.PasswordHash) {
		t.Error("expected temporary password to be hashed into the permanent slot")
	}
	if emp.ID == uuid.Nil {
		t.Error("expected surrogate id to be generated")
	}
}

func TestCreateDuplicate(t *testing.T) {
	svc := NewService(setupDB(t))

	createEmployee(t, svc, "E001", "alice@x.com", database.RoleEmployee)

	testCases := []struct {
		name       string
		employeeID string
		email      string
	}{
		{"same email", "E002", "alice@x.com"},
		{"same employee id", "E001", "bob@x.com"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(&database.Employee{
				EmployeeID: tc.employeeID,
				Name:       "Duplicate",
				Email:      tc.email,
			})
			if !errors.Is(err, ErrDuplicate) {
				t.Errorf("err = %v; want ErrDuplicate", err)
			}
		})
	}
}

func TestAuthenticateTempAndPermanent(t *testing.T) {
	svc := NewService(setupDB(t))

	_, temp := createEmployee(t, svc, "E001", "alice@x.com", database.RoleEmployee)

	emp, err := svc.Authenticate("alice@x.com", temp)
	if err != nil {
		t.Fatalf("authenticate with temp password: %v", err)
	}
	if emp.Email != "alice@x.com" {
		t.Errorf("email = %q; want alice@x.com", emp.Email)
	}

	// Login does not consume the temporary credential.
	if _, err := svc.Authenticate("alice@x.com", temp); err != nil {
		t.Errorf("second temp login failed: %v", err)
	}
}

func TestAuthenticateFailuresIndistinguishable(t *testing.T) {
	svc := NewService(setupDB(t))

	createEmployee(t, svc, "E001", "alice@x.com", database.RoleEmployee)

	_, wrongPassword := svc.Authenticate("alice@x.com", "not-the-password")
	_, unknownEmail := svc.Authenticate("nobody@x.com", "whatever")

	if !errors.Is(wrongPassword, ErrInvalidCredentials) {
		t.Errorf("wrong password err = %v; want ErrInvalidCredentials", wrongPassword)
	}
	if !errors.Is(unknownEmail, ErrInvalidCredentials) {
		t.Errorf("unknown email err = %v; want ErrInvalidCredentials", unknownEmail)
	}
}

func TestAuthenticateNormalizesEmail(t *testing.T) {
	svc := NewService(setupDB(t))

	_, temp := createEmployee(t, svc, "E001", "Alice@X.com", database.RoleEmployee)

	if _, err := svc.Authenticate("  ALICE@x.com ", temp); err != nil {
		t.Errorf("authenticate with unnormalized email: %v", err)
	}
}

func TestUpdatePasswordClearsTempCredential(t *testing.T) {
	svc := NewService(setupDB(t))

	emp, temp := createEmployee(t, svc, "E001", "alice@x.com", database.RoleEmployee)

	if err := svc.UpdatePassword(emp, "Str0ngPW!"); err != nil {
		t.Fatalf("update password: %v", err)
	}

	if _, err := svc.Authenticate("alice@x.com", temp); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("old temp password still authenticates: %v", err)
	}
	if _, err := svc.Authenticate("alice@x.com", "Str0ngPW!"); err != nil {
		t.Errorf("new password does not authenticate: %v", err)
	}

	stored, err := svc.GetByEmail("alice@x.com")
	if err != nil {
		t.Fatalf("get by email: %v", err)
	}
	if stored.TempPassword != nil {
		t.Error("expected temp password to be cleared")
	}
}

func TestIssueTempCredential(t *testing.T) {
	svc := NewService(setupDB(t))

	emp, _ := createEmployee(t, svc, "E001", "alice@x.com", database.RoleEmployee)
	if err := svc.UpdatePassword(emp, "Str0ngPW!"); err != nil {
		t.Fatalf("update password: %v", err)
	}

	temp, err := svc.IssueTempCredential(emp)
	if err != nil {
		t.Fatalf("issue temp credential: %v", err)
	}

	if _, err := svc.Authenticate("alice@x.com", temp); err != nil {
		t.Errorf("temp credential does not authenticate: %v", err)
	}
	if !utils.VerifyPassword(temp, emp.PasswordHash) {
		t.Error("expected temp password to be hashed into the permanent slot")
	}
}

func TestDelete(t *testing.T) {
	svc := NewService(setupDB(t))

	emp, _ := createEmployee(t, svc, "E001", "alice@x.com", database.RoleEmployee)

	if err := svc.Delete(emp); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := svc.GetByEmployeeID("E001"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v; want ErrNotFound", err)
	}
}

func TestListAll(t *testing.T) {
	svc := NewService(setupDB(t))

	createEmployee(t, svc, "E002", "bob@x.com", database.RoleEmployee)
	createEmployee(t, svc, "E001", "alice@x.com", database.RoleAdmin)

	emps, err := svc.ListAll(100, 0)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}

	if len(emps) != 2 {
		t.Fatalf("len = %d; want 2", len(emps))
	}
	if emps[0].EmployeeID != "E001" {
		t.Errorf("first employee = %q; want E001", emps[0].EmployeeID)
	}
}
