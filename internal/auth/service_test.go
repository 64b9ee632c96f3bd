package auth_test

import (
	"errors"
	"testing"
	"time"

	"github.com/commerceops/backoffice/internal/auth"
	"github.com/commerceops/backoffice/internal/rbac"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"
)

func TestAuthService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Auth Service Suite")
}

type mockUserRepo struct {
	users      map[string]*auth.User
	hashes     map[string]string
	shouldFail bool
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{
		users:  make(map[string]*auth.User),
		hashes: make(map[string]string),
	}
}

func (m *mockUserRepo) add(email, password string, id int64, role rbac.Role) {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	m.hashes[email] = string(hash)
	m.users[email] = &auth.User{
		ID:          id,
		Email:       email,
		Name:        "Test User",
		Role:        role,
		Permissions: rbac.PermissionStrings(role),
	}
}

func (m *mockUserRepo) GetCredentialsByEmail(email string) (string, int64, error) {
	if m.shouldFail {
		return "", 0, errors.New("db down")
	}
	hash, ok := m.hashes[email]
	if !ok {
		return "", 0, errors.New("user not found")
	}
	return hash, m.users[email].ID, nil
}

func (m *mockUserRepo) GetUserByID(userID int64) (*auth.User, error) {
	if m.shouldFail {
		return nil, errors.New("db down")
	}
	for _, u := range m.users {
		if u.ID == userID {
			return u, nil
		}
	}
	return nil, errors.New("user not found")
}

var _ = Describe("Auth Service", func() {
	var (
		repo    *mockUserRepo
		service *auth.Service
	)

	BeforeEach(func() {
		repo = newMockUserRepo()
		repo.add("admin@store.com", "admin123", 1, rbac.RoleAdmin)
		repo.add("staff@store.com", "staff123", 2, rbac.RoleStaff)

		tokenGen := auth.NewJWTTokenGenerator(
			"test-access-secret-test-access-secret",
			"test-refresh-secret-test-refresh-secret",
			15*time.Minute, 7*24*time.Hour)
		service = auth.NewService(repo, tokenGen)
	})

	Describe("Authenticate", func() {
		It("should return tokens and the principal for valid credentials", func() {
			result, err := service.Authenticate(auth.LoginDTO{Email: "admin@store.com", Password: "admin123"})
			Expect(err).NotTo(HaveOccurred())
			Expect(result.AccessToken).NotTo(BeEmpty())
			Expect(result.RefreshToken).NotTo(BeEmpty())
			Expect(result.User).NotTo(BeNil())
			Expect(result.User.Role).To(Equal(rbac.RoleAdmin))
			Expect(result.User.Permissions).To(ContainElement("manage_users"))
		})

		It("should reject a wrong password", func() {
			_, err := service.Authenticate(auth.LoginDTO{Email: "admin@store.com", Password: "nope"})
			Expect(err).To(Equal(auth.ErrInvalidCredentials))
		})

		It("should reject an unknown email", func() {
			_, err := service.Authenticate(auth.LoginDTO{Email: "ghost@store.com", Password: "x"})
			Expect(err).To(Equal(auth.ErrInvalidCredentials))
		})

		It("should reject missing fields before touching the repository", func() {
			repo.shouldFail = true
			_, err := service.Authenticate(auth.LoginDTO{Email: "", Password: ""})
			var vErr auth.ValidationError
			Expect(errors.As(err, &vErr)).To(BeTrue())
		})
	})

	Describe("token round trip", func() {
		It("should validate an issued access token", func() {
			result, err := service.Authenticate(auth.LoginDTO{Email: "staff@store.com", Password: "staff123"})
			Expect(err).NotTo(HaveOccurred())

			claims, err := service.ValidateAccessToken(result.AccessToken)
			Expect(err).NotTo(HaveOccurred())
			Expect(claims.UserID).To(Equal(int64(2)))
			Expect(claims.Email).To(Equal("staff@store.com"))
		})

		It("should refresh into a new token pair", func() {
			result, err := service.Authenticate(auth.LoginDTO{Email: "staff@store.com", Password: "staff123"})
			Expect(err).NotTo(HaveOccurred())

			tokens, err := service.RefreshTokens(result.RefreshToken)
			Expect(err).NotTo(HaveOccurred())
			Expect(tokens.AccessToken).NotTo(BeEmpty())

			claims, err := service.ValidateAccessToken(tokens.AccessToken)
			Expect(err).NotTo(HaveOccurred())
			Expect(claims.UserID).To(Equal(int64(2)))
		})

		It("should reject garbage tokens", func() {
			_, err := service.ValidateAccessToken("not-a-token")
			Expect(err).To(Equal(auth.ErrInvalidToken))
		})
	})
})
