package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/storekit/storefront/internal/application/checkout"
	domstore "github.com/storekit/storefront/internal/domain/store"
)

// Shell is the interactive store menu: list products, show the total
// stock, build and place an order. It reads commands from in and writes
// to out, so tests can drive it with scripted input.
type Shell struct {
	checkout *checkout.Service
	in       *bufio.Scanner
	out      io.Writer
}

func NewShell(checkoutSvc *checkout.Service, in io.Reader, out io.Writer) *Shell {
	return &Shell{
		checkout: checkoutSvc,
		in:       bufio.NewScanner(in),
		out:      out,
	}
}

// Run loops over the menu until the user quits or input ends.
func (s *Shell) Run(ctx context.Context) {
	for {
		fmt.Fprintln(s.out)
		fmt.Fprintln(s.out, "--- Store Menu ---")
		fmt.Fprintln(s.out, "1. List all products in store")
		fmt.Fprintln(s.out, "2. Show total amount in store")
		fmt.Fprintln(s.out, "3. Make an order")
		fmt.Fprintln(s.out, "4. Quit")

		choice, ok := s.prompt("Please choose an option (1-4): ")
		if !ok {
			return
		}

		switch strings.TrimSpace(choice) {
		case "1":
			s.listProducts(ctx)
		case "2":
			total := s.checkout.TotalQuantity(ctx)
			fmt.Fprintf(s.out, "\nTotal items in store: %s\n", total)
		case "3":
			s.makeOrder(ctx)
		case "4":
			fmt.Fprintln(s.out, "Goodbye!")
			return
		default:
			fmt.Fprintln(s.out, "Invalid choice. Please try again.")
		}
	}
}

func (s *Shell) listProducts(ctx context.Context) {
	fmt.Fprintln(s.out, "\nAvailable Products:")
	for i, p := range s.checkout.ListProducts(ctx) {
		fmt.Fprintf(s.out, "%d. %s\n", i+1, p.Describe())
	}
}

func (s *Shell) makeOrder(ctx context.Context) {
	listing := s.checkout.ListProducts(ctx)
	var lines []domstore.Line

	fmt.Fprintln(s.out, "\nStarting an order. Enter product number and amount (or leave blank to finish).")

	for {
		for i, p := range listing {
			fmt.Fprintf(s.out, "%d) %s\n", i+1, p.Describe())
		}

		rawIndex, ok := s.prompt("Product number: ")
		if !ok || strings.TrimSpace(rawIndex) == "" {
			break
		}
		rawAmount, ok := s.prompt("Amount: ")
		if !ok || strings.TrimSpace(rawAmount) == "" {
			break
		}

		index, errIdx := strconv.Atoi(strings.TrimSpace(rawIndex))
		amount, errAmt := strconv.Atoi(strings.TrimSpace(rawAmount))
		if errIdx != nil || errAmt != nil || index < 1 || index > len(listing) {
			fmt.Fprintln(s.out, "Invalid input. Please enter valid numbers.")
			continue
		}

		lines = append(lines, domstore.Line{Product: listing[index-1], Quantity: amount})
		fmt.Fprintln(s.out, "Added to cart.")
	}

	if len(lines) == 0 {
		return
	}

	result, err := s.checkout.PlaceOrder(ctx, lines)
	if err != nil {
		fmt.Fprintf(s.out, "Order failed: %v\n", err)
		return
	}
	fmt.Fprintf(s.out, "Order successful! Total price: %g\n", result.Total)
}

func (s *Shell) prompt(label string) (string, bool) {
	fmt.Fprint(s.out, label)
	if !s.in.Scan() {
		return "", false
	}
	return s.in.Text(), true
}
