package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	menudto "github.com/tiffin-inc/tiffin/internal/application/menu/dto"
	menuUsecases "github.com/tiffin-inc/tiffin/internal/application/menu/usecases"
	"github.com/tiffin-inc/tiffin/internal/interfaces/http/handlers/testutil"
	"github.com/tiffin-inc/tiffin/internal/shared/constants"
	"github.com/tiffin-inc/tiffin/internal/shared/errors"
	"github.com/tiffin-inc/tiffin/internal/shared/logger"
)

func init() {
	if err := RegisterValidators(); err != nil {
		panic(err)
	}
}

// =====================================================================
// Mock use cases
// =====================================================================

type mockCreateMenuUC struct {
	cmd    menuUsecases.CreateMenuCommand
	result *menudto.MenuDTO
	err    error
}

func (m *mockCreateMenuUC) Execute(ctx context.Context, cmd menuUsecases.CreateMenuCommand) (*menudto.MenuDTO, error) {
	m.cmd = cmd
	return m.result, m.err
}

type mockUpdateMenuUC struct {
	cmd    menuUsecases.UpdateMenuCommand
	result *menudto.MenuDTO
	err    error
}

func (m *mockUpdateMenuUC) Execute(ctx context.Context, cmd menuUsecases.UpdateMenuCommand) (*menudto.MenuDTO, error) {
	m.cmd = cmd
	return m.result, m.err
}

type mockGetMenuUC struct {
	result *menudto.MenuDTO
	err    error
}

func (m *mockGetMenuUC) Execute(ctx context.Context, sid string) (*menudto.MenuDTO, error) {
	return m.result, m.err
}

type mockListChefMenusUC struct {
	query  menuUsecases.ListChefMenusQuery
	result *menuUsecases.ListChefMenusResult
	err    error
}

func (m *mockListChefMenusUC) Execute(ctx context.Context, query menuUsecases.ListChefMenusQuery) (*menuUsecases.ListChefMenusResult, error) {
	m.query = query
	return m.result, m.err
}

type mockDeleteMenuUC struct {
	cmd menuUsecases.DeleteMenuCommand
	err error
}

func (m *mockDeleteMenuUC) Execute(ctx context.Context, cmd menuUsecases.DeleteMenuCommand) error {
	m.cmd = cmd
	return m.err
}

type menuMocks struct {
	create *mockCreateMenuUC
	update *mockUpdateMenuUC
	get    *mockGetMenuUC
	list   *mockListChefMenusUC
	delete *mockDeleteMenuUC
}

func newMenuHandler() (*MenuHandler, *menuMocks) {
	m := &menuMocks{
		create: &mockCreateMenuUC{result: &menudto.MenuDTO{ID: "menu_abc"}},
		update: &mockUpdateMenuUC{result: &menudto.MenuDTO{ID: "menu_abc"}},
		get:    &mockGetMenuUC{result: &menudto.MenuDTO{ID: "menu_abc"}},
		list:   &mockListChefMenusUC{result: &menuUsecases.ListChefMenusResult{Page: 1, PageSize: 20}},
		delete: &mockDeleteMenuUC{},
	}
	return NewMenuHandler(m.create, m.update, m.get, m.list, m.delete, logger.NewNop()), m
}

func validMenuBody() map[string]any {
	return map[string]any{
		"title":       "Weekday lunches",
		"description": "Cooked **daily**",
		"schedule": []map[string]any{
			{"day": "monday", "meal_type": "lunch", "name": "Dal", "price": "120.50"},
		},
	}
}

// =====================================================================
// Tests
// =====================================================================

func TestMenuHandler_CreateMenu(t *testing.T) {
	h, mocks := newMenuHandler()

	c, w := testutil.NewTestContext(http.MethodPost, "/menus", validMenuBody())
	testutil.SetAuthContext(c, 2, constants.RoleChef)
	h.CreateMenu(c)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, uint(2), mocks.create.cmd.ChefID)
	assert.Equal(t, constants.RoleChef, mocks.create.cmd.Role)
	require.Len(t, mocks.create.cmd.Schedule, 1)
	assert.Equal(t, "120.5", mocks.create.cmd.Schedule[0].Price.String())

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.True(t, resp.Success)
	assert.Contains(t, string(resp.Data), "menu_abc")
}

func TestMenuHandler_CreateMenu_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(body map[string]any)
		details string
	}{
		{
			name:    "missing title",
			mutate:  func(b map[string]any) { delete(b, "title") },
			details: "title is required",
		},
		{
			name:    "empty schedule",
			mutate:  func(b map[string]any) { b["schedule"] = []any{} },
			details: "schedule must contain at least 1 items",
		},
		{
			name: "unknown weekday",
			mutate: func(b map[string]any) {
				b["schedule"] = []map[string]any{{"day": "funday", "meal_type": "lunch", "name": "Dal", "price": "1"}}
			},
			details: "schedule[0].day must be a day of the week",
		},
		{
			name: "unknown meal type",
			mutate: func(b map[string]any) {
				b["schedule"] = []map[string]any{{"day": "monday", "meal_type": "brunch", "name": "Dal", "price": "1"}}
			},
			details: "schedule[0].meal_type must be one of Breakfast, Lunch, Dinner",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := newMenuHandler()
			body := validMenuBody()
			tt.mutate(body)

			c, w := testutil.NewTestContext(http.MethodPost, "/menus", body)
			testutil.SetAuthContext(c, 2, constants.RoleChef)
			h.CreateMenu(c)

			require.Equal(t, http.StatusBadRequest, w.Code)
			var resp testutil.APIResponse
			require.NoError(t, testutil.ParseResponse(w, &resp))
			require.NotNil(t, resp.Error)
			assert.Equal(t, string(errors.ErrorTypeValidation), resp.Error.Type)
			assert.Contains(t, resp.Error.Details, tt.details)
		})
	}
}

func TestMenuHandler_CreateMenu_Unauthenticated(t *testing.T) {
	h, _ := newMenuHandler()

	c, w := testutil.NewTestContext(http.MethodPost, "/menus", validMenuBody())
	h.CreateMenu(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMenuHandler_CreateMenu_UseCaseError(t *testing.T) {
	h, mocks := newMenuHandler()
	mocks.create.err = errors.NewInvalidMenuDataError("invalid menu", "price is required for Monday Lunch")

	c, w := testutil.NewTestContext(http.MethodPost, "/menus", validMenuBody())
	testutil.SetAuthContext(c, 2, constants.RoleChef)
	h.CreateMenu(c)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestMenuHandler_UpdateMenu(t *testing.T) {
	h, mocks := newMenuHandler()

	c, w := testutil.NewTestContext(http.MethodPut, "/menus/menu_abc", map[string]any{"title": "New title"})
	testutil.SetAuthContext(c, 2, constants.RoleChef)
	testutil.SetURLParam(c, "id", "menu_abc")
	h.UpdateMenu(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "menu_abc", mocks.update.cmd.MenuSID)
	assert.Equal(t, "New title", mocks.update.cmd.Title)
	assert.Nil(t, mocks.update.cmd.Schedule, "absent schedule keeps the old one")
}

func TestMenuHandler_UpdateMenu_NotOwner(t *testing.T) {
	h, mocks := newMenuHandler()
	mocks.update.err = errors.NewForbiddenError("menu belongs to another chef")

	c, w := testutil.NewTestContext(http.MethodPut, "/menus/menu_abc", map[string]any{"title": "x"})
	testutil.SetAuthContext(c, 5, constants.RoleChef)
	testutil.SetURLParam(c, "id", "menu_abc")
	h.UpdateMenu(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestMenuHandler_GetMenu(t *testing.T) {
	h, mocks := newMenuHandler()

	c, w := testutil.NewTestContext(http.MethodGet, "/menus/menu_abc", nil)
	testutil.SetURLParam(c, "id", "menu_abc")
	h.GetMenu(c)
	assert.Equal(t, http.StatusOK, w.Code)

	mocks.get.err = errors.NewNotFoundError("menu not found")
	c, w = testutil.NewTestContext(http.MethodGet, "/menus/menu_missing", nil)
	testutil.SetURLParam(c, "id", "menu_missing")
	h.GetMenu(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMenuHandler_ListChefMenus(t *testing.T) {
	h, mocks := newMenuHandler()
	mocks.list.result = &menuUsecases.ListChefMenusResult{
		Menus:    []*menudto.MenuDTO{{ID: "menu_a"}, {ID: "menu_b"}},
		Total:    3,
		Page:     1,
		PageSize: 2,
	}

	c, w := testutil.NewTestContext(http.MethodGet, "/chefs/2/menus", nil)
	testutil.SetURLParam(c, "chef_id", "2")
	testutil.SetQueryParams(c, map[string]string{"page_size": "2"})
	h.ListChefMenus(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(2), mocks.list.query.ChefID)
	assert.Equal(t, 2, mocks.list.query.PageSize)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	var data testutil.ListData
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	assert.Equal(t, int64(3), data.Total)
	assert.Equal(t, 2, data.TotalPages)
}

func TestMenuHandler_ListChefMenus_InvalidChef(t *testing.T) {
	h, _ := newMenuHandler()

	c, w := testutil.NewTestContext(http.MethodGet, "/chefs/abc/menus", nil)
	testutil.SetURLParam(c, "chef_id", "abc")
	h.ListChefMenus(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMenuHandler_DeleteMenu(t *testing.T) {
	h, mocks := newMenuHandler()

	c, w := testutil.NewTestContext(http.MethodDelete, "/menus/menu_abc", nil)
	testutil.SetAuthContext(c, 2, constants.RoleChef)
	testutil.SetURLParam(c, "id", "menu_abc")
	h.DeleteMenu(c)

	assert.Equal(t, http.StatusNoContent, c.Writer.Status())
	assert.Empty(t, w.Body.String())
	assert.Equal(t, uint(2), mocks.delete.cmd.ChefID)
}
