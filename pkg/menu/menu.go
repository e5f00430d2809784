// Package menu implements the interactive text menu staff use to run the
// nursery from a terminal.
package menu

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"nursery/pkg/logger"
	"nursery/pkg/nursery"
)

// errClosed is returned by the prompt helpers once input is exhausted.
var errClosed = errors.New("input closed")

// Menu reads commands from in and writes results to out.
type Menu struct {
	repo  nursery.Repository
	in    io.Reader
	out   io.Writer
	log   *logger.Logger
	stats nursery.StatsOptions
	lines <-chan line
}

type line struct {
	text string
	err  error
}

// New creates a Menu over repo.
func New(repo nursery.Repository, in io.Reader, out io.Writer, log *logger.Logger, stats nursery.StatsOptions) *Menu {
	if log == nil {
		log = logger.Nop()
	}
	return &Menu{
		repo:  repo,
		in:    in,
		out:   out,
		log:   log,
		stats: stats,
	}
}

// Run shows the menu until the user exits, input ends or ctx is cancelled.
func (m *Menu) Run(ctx context.Context) error {
	stop := make(chan struct{})
	defer close(stop)
	m.lines = m.readLines(stop)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		m.printf("===== Plant Nursery Management System =====\n")
		m.printf("1. Add Plant\n")
		m.printf("2. Calculate Statistics\n")
		m.printf("3. Search Plant by Name\n")
		m.printf("4. Record Customer Purchase\n")
		m.printf("5. Remove Plant\n")
		m.printf("6. List Plants\n")
		m.printf("7. Exit\n")

		choice, err := m.prompt(ctx, "Select an option: ")
		if err != nil {
			return m.done(err)
		}

		switch choice {
		case "1":
			err = m.addPlant(ctx)
		case "2":
			m.showStatistics()
		case "3":
			err = m.searchPlant(ctx)
		case "4":
			total := m.repo.RecordCustomerPurchase()
			m.log.Debug(ctx, "purchase recorded", "total", total)
			m.printf("Purchase recorded. Total purchases: %d\n", total)
		case "5":
			err = m.removePlant(ctx)
		case "6":
			m.listPlants()
		case "0", "7":
			return nil
		default:
			m.printf("Invalid option. Please try again.\n")
		}
		if err != nil {
			return m.done(err)
		}
	}
}

func (m *Menu) done(err error) error {
	if errors.Is(err, errClosed) {
		return nil
	}
	return err
}

func (m *Menu) addPlant(ctx context.Context) error {
	m.printf("===== Add Plant =====\n")
	name, err := m.prompt(ctx, "Enter plant name: ")
	if err != nil {
		return err
	}
	species, err := m.prompt(ctx, "Enter species: ")
	if err != nil {
		return err
	}
	age, err := m.promptInt(ctx, "Enter age: ")
	if err != nil {
		return err
	}
	height, err := m.promptFloat(ctx, "Enter height: ")
	if err != nil {
		return err
	}
	price, err := m.promptFloat(ctx, "Enter price: ")
	if err != nil {
		return err
	}
	flowering, err := m.promptYesNo(ctx, "Is the plant a flowering plant? (y/n): ")
	if err != nil {
		return err
	}

	p := nursery.NewPlant(name, species, age, height, price)
	if flowering {
		monocot, err := m.promptYesNo(ctx, "Is the flowering plant a monocot? (y/n): ")
		if err != nil {
			return err
		}
		p = nursery.NewFloweringPlant(name, species, age, height, price, monocot)
	}

	p = m.repo.AddPlant(p)
	m.log.Info(ctx, "plant added", "id", p.ID, "name", p.Name, "flowering", p.IsFlowering())
	m.printf("Plant added successfully.\n")
	return nil
}

func (m *Menu) showStatistics() {
	s := nursery.Summarize(m.repo, m.stats)
	m.printf("===== Nursery Statistics =====\n")
	m.printf("Total Revenue: %v\n", s.TotalRevenue)
	m.printf("Flowering Count: %d\n", s.FloweringCount)
	m.printf("Average Price of Non-Flowering Plants: %v\n", s.AverageNonFloweringPrice)
	m.printf("Cheapest Plant: %s\n", s.CheapestPlant)
	m.printf("Number of %s Plants: %d\n", s.Species, s.SpeciesCount)
	m.printf("Has Monocot with Price $%v: %t\n", s.MonocotPrice, s.HasMonocotWithPrice)
	m.printf("Bulk Discount: %v\n", s.BulkDiscount)
	m.printf("Loyalty Discount: %v\n", s.LoyaltyDiscount)
	m.printf("Average Age of Plants: %v\n", s.AverageAge)
	m.printf("Total Customer Purchases: %d\n", s.TotalPurchases)
}

func (m *Menu) searchPlant(ctx context.Context) error {
	name, err := m.prompt(ctx, "Enter a plant name to get details: ")
	if err != nil {
		return err
	}
	p, ok := m.repo.FindPlantByName(name)
	if !ok {
		m.printf("Plant not found.\n")
		return nil
	}
	m.printf("%s\n", describe(p))
	return nil
}

func (m *Menu) removePlant(ctx context.Context) error {
	name, err := m.prompt(ctx, "Enter the name of the plant to remove: ")
	if err != nil {
		return err
	}
	p, ok := m.repo.FindPlantByName(name)
	if !ok {
		m.printf("Plant not found.\n")
		return nil
	}
	m.repo.RemovePlant(p)
	m.log.Info(ctx, "plant removed", "id", p.ID, "name", p.Name)
	m.printf("Removed %s.\n", p.Name)
	return nil
}

func (m *Menu) listPlants() {
	plants := m.repo.Plants()
	if len(plants) == 0 {
		m.printf("No plants in stock.\n")
		return
	}
	for i, p := range plants {
		m.printf("%d. %s\n", i+1, describe(p))
	}
}

func describe(p nursery.Plant) string {
	kind := "non-flowering"
	if p.IsFlowering() {
		kind = "flowering"
		if p.IsMonocot() {
			kind = "flowering, monocot"
		}
	}
	return fmt.Sprintf("Details of %s - Species: %s, Age: %d, Height: %v, Price: %v (%s)",
		p.Name, p.Species, p.Age, p.Height, p.Price, kind)
}

func (m *Menu) printf(format string, args ...any) {
	fmt.Fprintf(m.out, format, args...)
}

// readLines scans in on its own goroutine and closes the channel once input
// ends. It stops sending when stop is closed.
func (m *Menu) readLines(stop <-chan struct{}) <-chan line {
	ch := make(chan line)
	go func() {
		defer close(ch)
		sc := bufio.NewScanner(m.in)
		for sc.Scan() {
			select {
			case ch <- line{text: sc.Text()}:
			case <-stop:
				return
			}
		}
		if err := sc.Err(); err != nil {
			select {
			case ch <- line{err: err}:
			case <-stop:
			}
		}
	}()
	return ch
}

func (m *Menu) prompt(ctx context.Context, label string) (string, error) {
	m.printf("%s", label)
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case l, ok := <-m.lines:
		if !ok {
			return "", errClosed
		}
		if l.err != nil {
			return "", fmt.Errorf("reading input: %w", l.err)
		}
		return strings.TrimSpace(l.text), nil
	}
}

func (m *Menu) promptInt(ctx context.Context, label string) (int, error) {
	for {
		raw, err := m.prompt(ctx, label)
		if err != nil {
			return 0, err
		}
		v, err := strconv.Atoi(raw)
		if err == nil {
			return v, nil
		}
		m.printf("Invalid whole number %q, please try again.\n", raw)
	}
}

func (m *Menu) promptFloat(ctx context.Context, label string) (float64, error) {
	for {
		raw, err := m.prompt(ctx, label)
		if err != nil {
			return 0, err
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err == nil {
			return v, nil
		}
		m.printf("Invalid number %q, please try again.\n", raw)
	}
}

func (m *Menu) promptYesNo(ctx context.Context, label string) (bool, error) {
	raw, err := m.prompt(ctx, label)
	if err != nil {
		return false, err
	}
	return strings.EqualFold(raw, "y"), nil
}
