// Package order composes the pre-filled order messages and messaging deep links a
// visitor uses to place an order with the seller.
package order

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/qyinm/craftshelf/types"
)

// DefaultDeepLinkBase is the messaging app's click-to-chat host.
const DefaultDeepLinkBase = "https://wa.me"

// ErrEmptyRequirement is returned for a custom order with no requirement text.
var ErrEmptyRequirement = errors.New("please describe your requirement")

// ProductMessage builds the order text for p. The image line carries the link exactly
// as it appears in the sheet; the seller reads it, so it is never normalized.
func ProductMessage(p types.Product, currency string) string {
	var b strings.Builder
	b.WriteString("Hi, I want to order:\n\n")
	fmt.Fprintf(&b, "Product ID: %s\n", p.ID())
	fmt.Fprintf(&b, "Product Name: %s\n", p.Name())
	fmt.Fprintf(&b, "Price: %s%s\n", currency, p.Price())
	fmt.Fprintf(&b, "Image: %s", p.Image())
	return b.String()
}

// CustomMessage builds the text for a free-form custom order request.
func CustomMessage(requirement, startingPrice, currency string) (string, error) {
	req := strings.TrimSpace(requirement)
	if req == "" {
		return "", ErrEmptyRequirement
	}

	var b strings.Builder
	b.WriteString("Hi, I want a custom order:\n\n")
	fmt.Fprintf(&b, "Requirement: %s\n\n", req)
	fmt.Fprintf(&b, "(Custom orders start from %s%s)", currency, startingPrice)
	return b.String(), nil
}

// DeepLink returns "<base>/<destination>?text=<message>" with the message URL-encoded.
func DeepLink(base, destination, message string) string {
	if base == "" {
		base = DefaultDeepLinkBase
	}
	return strings.TrimRight(base, "/") + "/" + url.PathEscape(destination) + "?text=" + encodeText(message)
}

// encodeText escapes like a browser's encodeURIComponent: spaces become %20, not "+".
func encodeText(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// Composer fixes the destination and pricing settings shared by every order.
type Composer struct {
	Base          string
	Destination   string
	Currency      string
	StartingPrice string
}

// ProductLink returns the deep link ordering p.
func (c Composer) ProductLink(p types.Product) string {
	return DeepLink(c.Base, c.Destination, ProductMessage(p, c.Currency))
}

// CustomLink returns the deep link for a custom order, or ErrEmptyRequirement.
func (c Composer) CustomLink(requirement string) (string, error) {
	msg, err := CustomMessage(requirement, c.StartingPrice, c.Currency)
	if err != nil {
		return "", err
	}
	return DeepLink(c.Base, c.Destination, msg), nil
}
