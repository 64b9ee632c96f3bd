package rbac_test

import (
	"strings"
	"testing"

	"github.com/commerceops/backoffice/internal/rbac"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestRBAC(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "RBAC Suite")
}

var _ = Describe("Permission tables", func() {
	It("should pass the startup validation", func() {
		Expect(rbac.Validate()).To(Succeed())
	})

	It("should grant managers a subset of admin and staff a subset of managers", func() {
		adminSet := map[rbac.Permission]bool{}
		for _, p := range rbac.PermissionsForRole(rbac.RoleAdmin) {
			adminSet[p] = true
		}
		managerSet := map[rbac.Permission]bool{}
		for _, p := range rbac.PermissionsForRole(rbac.RoleManager) {
			managerSet[p] = true
			Expect(adminSet[p]).To(BeTrue(), "manager permission %q missing from admin", p)
		}
		for _, p := range rbac.PermissionsForRole(rbac.RoleStaff) {
			Expect(managerSet[p]).To(BeTrue(), "staff permission %q missing from manager", p)
		}
	})
})

var _ = Describe("HasPermission", func() {
	admin := &rbac.Principal{Email: "admin@store.com", Name: "Admin User", Role: rbac.RoleAdmin}
	staff := &rbac.Principal{Email: "staff@store.com", Name: "Staff Member", Role: rbac.RoleStaff}

	It("should deny every permission to a nil principal", func() {
		for _, p := range rbac.PermissionsForRole(rbac.RoleAdmin) {
			Expect(rbac.HasPermission(nil, p)).To(BeFalse())
		}
	})

	It("should deny unknown tags even for admins", func() {
		Expect(rbac.HasPermission(admin, rbac.Permission("manage_everything"))).To(BeFalse())
		Expect(rbac.HasPermission(admin, rbac.Permission(""))).To(BeFalse())
	})

	It("should deny every manage_* tag to staff and grant their view_* tags", func() {
		for _, p := range rbac.PermissionsForRole(rbac.RoleAdmin) {
			if strings.HasPrefix(string(p), "manage_") || strings.HasPrefix(string(p), "delete_") {
				Expect(rbac.HasPermission(staff, p)).To(BeFalse(), "staff should lack %q", p)
			}
		}
		for _, p := range rbac.PermissionsForRole(rbac.RoleStaff) {
			Expect(rbac.HasPermission(staff, p)).To(BeTrue(), "staff should hold %q", p)
		}
	})

	It("should grant admins the full catalog", func() {
		for _, p := range rbac.PermissionsForRole(rbac.RoleAdmin) {
			Expect(rbac.HasPermission(admin, p)).To(BeTrue())
		}
	})

	It("should be deterministic across repeated checks", func() {
		for i := 0; i < 3; i++ {
			Expect(rbac.HasPermission(staff, rbac.ViewBrands)).To(BeTrue())
			Expect(rbac.HasPermission(staff, rbac.ManageBrands)).To(BeFalse())
		}
	})
})

var _ = Describe("Guard", func() {
	manager := &rbac.Principal{Email: "manager@store.com", Name: "Store Manager", Role: rbac.RoleManager}

	It("should report Loading until the session store is ready", func() {
		Expect(rbac.Guard(nil, rbac.ViewDashboard, false)).To(Equal(rbac.Loading))
		Expect(rbac.Guard(manager, rbac.ViewDashboard, false)).To(Equal(rbac.Loading))
	})

	It("should report Unauthenticated for a missing principal once ready", func() {
		Expect(rbac.Guard(nil, rbac.ViewDashboard, true)).To(Equal(rbac.Unauthenticated))
	})

	It("should report Forbidden when the tag is not granted", func() {
		Expect(rbac.Guard(manager, rbac.ManageUsers, true)).To(Equal(rbac.Forbidden))
	})

	It("should authorize a granted tag and an empty requirement", func() {
		Expect(rbac.Guard(manager, rbac.ManageInventory, true)).To(Equal(rbac.Authorized))
		Expect(rbac.Guard(manager, "", true)).To(Equal(rbac.Authorized))
	})
})
