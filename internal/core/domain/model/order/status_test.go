package order_test

import (
	"fmt"
	"testing"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Constants(t *testing.T) {
	t.Run("should have correct enum values", func(t *testing.T) {
		assert.Equal(t, 0, int(order.Unknown))
		assert.Equal(t, 1, int(order.Pending))
		assert.Equal(t, 2, int(order.FollowUp))
		assert.Equal(t, 3, int(order.Shopping))
		assert.Equal(t, 4, int(order.ReadyForShipping))
		assert.Equal(t, 5, int(order.Delivery))
		assert.Equal(t, 6, int(order.Delivered))
		assert.Equal(t, 7, int(order.Cancelled))
	})
}

func TestStatus_Validate(t *testing.T) {
	t.Run("should validate valid statuses", func(t *testing.T) {
		validStatuses := []order.Status{
			order.Pending,
			order.FollowUp,
			order.Shopping,
			order.ReadyForShipping,
			order.Delivery,
			order.Delivered,
			order.Cancelled,
		}

		for _, status := range validStatuses {
			t.Run(fmt.Sprintf("should validate %s status", status.String()), func(t *testing.T) {
				require.NoError(t, status.Validate())
			})
		}
	})

	t.Run("should reject Unknown and out-of-range statuses", func(t *testing.T) {
		invalidStatuses := []order.Status{
			order.Unknown,
			order.Status(-1),
			order.Status(8),
			order.Status(100),
		}

		for _, status := range invalidStatuses {
			t.Run(fmt.Sprintf("should reject status value %d", int(status)), func(t *testing.T) {
				err := status.Validate()

				require.Error(t, err)
				assert.IsType(t, &errs.ValueIsInvalidError{}, err)
				assert.Contains(t, err.Error(), "status is invalid")
			})
		}
	})
}

func TestStatus_String(t *testing.T) {
	expected := map[order.Status]string{
		order.Unknown:          "unknown",
		order.Pending:          "pending",
		order.FollowUp:         "follow_up",
		order.Shopping:         "shopping",
		order.ReadyForShipping: "ready_for_shipping",
		order.Delivery:         "delivery",
		order.Delivered:        "delivered",
		order.Cancelled:        "cancelled",
	}

	for status, name := range expected {
		assert.Equal(t, name, status.String())
	}

	assert.Equal(t, "unknown", order.Status(42).String())
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.True(t, order.Delivered.IsTerminal())
	assert.True(t, order.Cancelled.IsTerminal())

	for _, status := range []order.Status{
		order.Pending, order.FollowUp, order.Shopping, order.ReadyForShipping, order.Delivery,
	} {
		assert.False(t, status.IsTerminal(), "%s should not be terminal", status)
	}
}

func TestStatus_StartShopping(t *testing.T) {
	t.Run("picker and vendor may start from pending and follow_up", func(t *testing.T) {
		for _, role := range []order.Role{order.RolePicker, order.RoleVendor} {
			for _, from := range []order.Status{order.Pending, order.FollowUp} {
				newStatus, err := from.StartShopping(role)
				require.NoError(t, err, "%s from %s", role, from)
				assert.Equal(t, order.Shopping, newStatus)
			}
		}
	})

	t.Run("admin may not start shopping", func(t *testing.T) {
		_, err := order.Pending.StartShopping(order.RoleAdmin)
		require.ErrorIs(t, err, errs.ErrOperationNotPermitted)
	})

	t.Run("may not start from later statuses", func(t *testing.T) {
		for _, from := range []order.Status{
			order.Shopping, order.ReadyForShipping, order.Delivery, order.Delivered, order.Cancelled,
		} {
			_, err := from.StartShopping(order.RoleVendor)
			require.ErrorIs(t, err, errs.ErrOperationNotPermitted, "from %s", from)
		}
	})
}

func TestStatus_MarkReady(t *testing.T) {
	for _, role := range []order.Role{order.RoleVendor, order.RoleAdmin} {
		newStatus, err := order.Shopping.MarkReady(role)
		require.NoError(t, err)
		assert.Equal(t, order.ReadyForShipping, newStatus)
	}

	_, err := order.Shopping.MarkReady(order.RolePicker)
	require.ErrorIs(t, err, errs.ErrOperationNotPermitted)

	_, err = order.Pending.MarkReady(order.RoleVendor)
	require.ErrorIs(t, err, errs.ErrOperationNotPermitted)
}

func TestStatus_MarkShipped(t *testing.T) {
	newStatus, err := order.ReadyForShipping.MarkShipped(order.RoleVendor)
	require.NoError(t, err)
	assert.Equal(t, order.Delivery, newStatus)

	_, err = order.Shopping.MarkShipped(order.RoleAdmin)
	require.ErrorIs(t, err, errs.ErrOperationNotPermitted)
}

func TestStatus_MarkDelivered(t *testing.T) {
	newStatus, err := order.Delivery.MarkDelivered(order.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, order.Delivered, newStatus)

	_, err = order.ReadyForShipping.MarkDelivered(order.RoleVendor)
	require.ErrorIs(t, err, errs.ErrOperationNotPermitted)
}

func TestStatus_Cancel(t *testing.T) {
	t.Run("vendor and admin may cancel any non-terminal status", func(t *testing.T) {
		for _, role := range []order.Role{order.RoleVendor, order.RoleAdmin} {
			for _, from := range []order.Status{
				order.Pending, order.FollowUp, order.Shopping, order.ReadyForShipping, order.Delivery,
			} {
				newStatus, err := from.Cancel(role)
				require.NoError(t, err, "%s from %s", role, from)
				assert.Equal(t, order.Cancelled, newStatus)
			}
		}
	})

	t.Run("picker may not cancel", func(t *testing.T) {
		_, err := order.Pending.Cancel(order.RolePicker)
		require.ErrorIs(t, err, errs.ErrOperationNotPermitted)
	})
}

// Terminal statuses must never be exited, whatever the role or target.
func TestStatus_TerminalStatusesAreNeverExited(t *testing.T) {
	allRoles := []order.Role{order.RolePicker, order.RoleVendor, order.RoleAdmin}
	allTargets := []order.Status{
		order.Pending, order.FollowUp, order.Shopping,
		order.ReadyForShipping, order.Delivery, order.Delivered, order.Cancelled,
	}

	for _, terminal := range []order.Status{order.Delivered, order.Cancelled} {
		for _, role := range allRoles {
			for _, target := range allTargets {
				err := terminal.CanTransition(role, target)
				require.ErrorIs(t, err, errs.ErrOperationNotPermitted,
					"%s must not allow %s -> %s", role, terminal, target)
			}
		}
	}
}

func TestRoleFromString(t *testing.T) {
	testCases := map[string]order.Role{
		"picker": order.RolePicker,
		"vendor": order.RoleVendor,
		"admin":  order.RoleAdmin,
	}

	for name, expected := range testCases {
		role, err := order.RoleFromString(name)
		require.NoError(t, err)
		assert.Equal(t, expected, role)
	}

	for _, name := range []string{"", "unknown", "customer", "Picker"} {
		_, err := order.RoleFromString(name)
		require.Error(t, err, "role %q should be rejected", name)
	}
}
