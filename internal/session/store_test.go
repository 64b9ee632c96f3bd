package session_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/commerceops/backoffice/internal/rbac"
	"github.com/commerceops/backoffice/internal/session"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestSession(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Session Suite")
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

var _ = Describe("Store", func() {
	var storage *session.MemoryStorage

	BeforeEach(func() {
		storage = session.NewMemoryStorage()
	})

	It("should be ready immediately after construction", func() {
		store := session.NewStore(storage, testLogger())
		Expect(store.Ready()).To(BeTrue())
	})

	It("should start logged out with empty storage", func() {
		store := session.NewStore(storage, testLogger())
		_, ok := store.Current()
		Expect(ok).To(BeFalse())
	})

	It("should hold and persist a principal across login", func() {
		store := session.NewStore(storage, testLogger())
		p := rbac.Principal{Email: "manager@store.com", Name: "Store Manager", Role: rbac.RoleManager}
		Expect(store.Login(p)).To(Succeed())

		got, ok := store.Current()
		Expect(ok).To(BeTrue())
		Expect(got.Email).To(Equal("manager@store.com"))

		// a second store over the same storage rehydrates the session
		restored := session.NewStore(storage, testLogger())
		got, ok = restored.Current()
		Expect(ok).To(BeTrue())
		Expect(got.Role).To(Equal(rbac.RoleManager))
	})

	It("should clear memory and storage on logout", func() {
		store := session.NewStore(storage, testLogger())
		Expect(store.Login(rbac.Principal{Email: "a@b.c", Name: "A", Role: rbac.RoleStaff})).To(Succeed())
		Expect(store.Logout()).To(Succeed())

		_, ok := store.Current()
		Expect(ok).To(BeFalse())

		restored := session.NewStore(storage, testLogger())
		_, ok = restored.Current()
		Expect(ok).To(BeFalse())
	})

	It("should treat corrupt persisted data as logged out", func() {
		Expect(storage.Save([]byte("{not json"))).To(Succeed())
		store := session.NewStore(storage, testLogger())
		_, ok := store.Current()
		Expect(ok).To(BeFalse())
		Expect(store.Ready()).To(BeTrue())
	})

	It("should reject a persisted principal with an unknown role", func() {
		Expect(storage.Save([]byte(`{"email":"x@y.z","name":"X","role":"superadmin"}`))).To(Succeed())
		store := session.NewStore(storage, testLogger())
		_, ok := store.Current()
		Expect(ok).To(BeFalse())
	})

	It("should guard with Loading semantics only before readiness", func() {
		store := session.NewStore(storage, testLogger())
		Expect(store.Guard(rbac.ViewDashboard)).To(Equal(rbac.Unauthenticated))

		Expect(store.Login(rbac.Principal{Email: "s@s.s", Name: "S", Role: rbac.RoleStaff})).To(Succeed())
		Expect(store.Guard(rbac.ViewDashboard)).To(Equal(rbac.Authorized))
		Expect(store.Guard(rbac.ManageInventory)).To(Equal(rbac.Forbidden))
	})
})

var _ = Describe("FileStorage", func() {
	It("should round-trip and clear the session file", func() {
		dir := GinkgoT().TempDir()
		fs := session.NewFileStorage(filepath.Join(dir, "nested", "session.json"))

		data, err := fs.Load()
		Expect(err).NotTo(HaveOccurred())
		Expect(data).To(BeNil())

		Expect(fs.Save([]byte(`{"email":"a@b.c"}`))).To(Succeed())
		data, err = fs.Load()
		Expect(err).NotTo(HaveOccurred())
		Expect(string(data)).To(ContainSubstring("a@b.c"))

		Expect(fs.Clear()).To(Succeed())
		Expect(fs.Clear()).To(Succeed(), "clearing twice is not an error")
	})
})
