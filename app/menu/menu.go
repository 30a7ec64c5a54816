// Package menu drives the console: it shows the menus, reads a choice,
// runs the chosen workflow and reports how it went.
package menu

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/northwind/catalog-console/app/console"
	"github.com/northwind/catalog-console/app/logging"
	"github.com/northwind/catalog-console/app/validation"
	"github.com/northwind/catalog-console/models"
)

// State is the menu the controller is showing.
type State int

const (
	MainMenu State = iota
	ProductMenu
	CategoryMenu
	Quit
)

func (s State) String() string {
	switch s {
	case MainMenu:
		return "main"
	case ProductMenu:
		return "product"
	case CategoryMenu:
		return "category"
	default:
		return "quit"
	}
}

// Action is one leaf command of a menu.
type Action func(ctx context.Context, c *console.Console) error

type ProductWorkflows interface {
	HandleAdd(ctx context.Context, c *console.Console) error
	HandleEdit(ctx context.Context, c *console.Console) error
	HandleList(ctx context.Context, c *console.Console) error
	HandleShow(ctx context.Context, c *console.Console) error
	HandleDelete(ctx context.Context, c *console.Console) error
}

type CategoryWorkflows interface {
	HandleAdd(ctx context.Context, c *console.Console) error
	HandleEdit(ctx context.Context, c *console.Console) error
	HandleList(ctx context.Context, c *console.Console) error
	HandleListWithProducts(ctx context.Context, c *console.Console) error
	HandleShow(ctx context.Context, c *console.Console) error
	HandleDelete(ctx context.Context, c *console.Console) error
}

// MenuItem either moves to another menu or runs an action and stays.
type MenuItem struct {
	Key    string
	Label  string
	Next   State
	Action Action
}

type Menu struct {
	Title string
	Items []MenuItem
}

type Controller struct {
	console *console.Console
	logger  *slog.Logger
	menus   map[State]Menu
}

func NewController(c *console.Console, logger *slog.Logger, products ProductWorkflows, categories CategoryWorkflows) *Controller {
	return &Controller{
		console: c,
		logger:  logger,
		menus:   buildMenus(products, categories),
	}
}

func buildMenus(products ProductWorkflows, categories CategoryWorkflows) map[State]Menu {
	return map[State]Menu{
		MainMenu: {
			Title: "Northwind Console Application",
			Items: []MenuItem{
				{Key: "1", Label: "Product Management", Next: ProductMenu},
				{Key: "2", Label: "Category Management", Next: CategoryMenu},
				{Key: "q", Label: "Quit", Next: Quit},
			},
		},
		ProductMenu: {
			Title: "Product Management",
			Items: []MenuItem{
				{Key: "1", Label: "Add Product", Action: products.HandleAdd},
				{Key: "2", Label: "Edit Product", Action: products.HandleEdit},
				{Key: "3", Label: "Display All Products", Action: products.HandleList},
				{Key: "4", Label: "Display Specific Product", Action: products.HandleShow},
				{Key: "5", Label: "Delete Product", Action: products.HandleDelete},
				{Key: "b", Label: "Back to Main Menu", Next: MainMenu},
			},
		},
		CategoryMenu: {
			Title: "Category Management",
			Items: []MenuItem{
				{Key: "1", Label: "Add Category", Action: categories.HandleAdd},
				{Key: "2", Label: "Edit Category", Action: categories.HandleEdit},
				{Key: "3", Label: "Display All Categories", Action: categories.HandleList},
				{Key: "4", Label: "Display All Categories and their Products", Action: categories.HandleListWithProducts},
				{Key: "5", Label: "Display Specific Category and its Products", Action: categories.HandleShow},
				{Key: "6", Label: "Delete Category", Action: categories.HandleDelete},
				{Key: "b", Label: "Back to Main Menu", Next: MainMenu},
			},
		},
	}
}

// Run shows menus until the user quits, input ends or ctx is done.
func (m *Controller) Run(ctx context.Context) {
	state := MainMenu
	for state != Quit {
		state = m.Step(ctx, state)
	}
}

// Step shows the menu for state, handles one choice and returns the state
// to continue from.
func (m *Controller) Step(ctx context.Context, state State) State {
	if err := ctx.Err(); err != nil {
		m.logger.Info("session cancelled", "error", err)
		return Quit
	}

	menu, ok := m.menus[state]
	if !ok {
		return Quit
	}

	m.console.Println()
	m.console.Title(menu.Title)
	for _, item := range menu.Items {
		m.console.Printf("%s) %s\n", item.Key, item.Label)
	}

	choice, err := m.console.Prompt("Enter your choice")
	if err != nil {
		if !errors.Is(err, io.EOF) {
			m.logger.Error("failed to read input", "error", err)
		}
		return Quit
	}

	item, ok := find(menu, choice)
	if !ok {
		m.logger.Warn("invalid menu option selected", "menu", state.String(), "choice", choice)
		m.console.Warning("Invalid choice. Please try again.")
		return state
	}

	m.logger.Info("menu option selected", "menu", state.String(), "choice", item.Key, "label", item.Label)
	if item.Action == nil {
		return item.Next
	}

	if quit := m.dispatch(ctx, item); quit {
		return Quit
	}
	return state
}

// dispatch runs one action with its own operation logger and reports the
// outcome. It reports whether input ended or ctx was cancelled during the
// action.
func (m *Controller) dispatch(ctx context.Context, item MenuItem) (quit bool) {
	logger := logging.WithOperation(m.logger, "command", item.Label)
	ctx = logging.NewContext(ctx, logger)

	defer func() {
		if r := recover(); r != nil {
			logger.Error("command panicked", "panic", r)
			m.console.Error(fmt.Sprintf("Error: unexpected failure in %s", item.Label))
		}
	}()

	err := item.Action(ctx, m.console)
	if err == nil {
		logger.Info("command completed")
		return false
	}
	if errors.Is(err, io.EOF) {
		logger.Info("input ended during command")
		return true
	}
	if ctx.Err() != nil {
		logger.Info("command cancelled", "error", err)
		return true
	}
	m.report(logger, err)
	return false
}

// report classifies a failed command, logs it and tells the user.
func (m *Controller) report(logger *slog.Logger, err error) {
	var (
		vErr   *validation.Error
		dupErr *models.DuplicateNameError
		pErr   *console.ParseError
	)

	switch {
	case errors.As(err, &vErr):
		for _, f := range vErr.Failures {
			logger.Error("validation failed", "field", f.Field, "message", f.Message)
			m.console.Error("Error: " + f.Message)
		}
	case errors.As(err, &dupErr):
		logger.Error("duplicate name", "entity", dupErr.Entity, "name", dupErr.Name)
		m.console.Error(fmt.Sprintf("Error: A %s with this name already exists!", dupErr.Entity))
	case errors.Is(err, models.ErrNotFound):
		logger.Warn("record not found", "error", err)
		m.console.Warning(notFoundMessage(err))
	case errors.As(err, &pErr):
		logger.Warn("invalid input", "field", pErr.Field, "input", pErr.Input)
		m.console.Warning(fmt.Sprintf("Invalid %s.", pErr.Field))
	default:
		logger.Error("command failed", "error", err)
		m.console.Error("Error: " + err.Error())
	}
}

func notFoundMessage(err error) string {
	switch {
	case errors.Is(err, models.ErrProductNotFound):
		return "Product not found."
	case errors.Is(err, models.ErrCategoryNotFound):
		return "Category not found."
	default:
		return "Record not found."
	}
}

// find matches choice against the menu keys, ignoring case.
func find(menu Menu, choice string) (MenuItem, bool) {
	for _, item := range menu.Items {
		if strings.EqualFold(item.Key, choice) {
			return item, true
		}
	}
	return MenuItem{}, false
}
