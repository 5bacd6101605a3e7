package index

import (
	"fmt"
	"strings"

	"github.com/FAU-CDI/hexastore/internal/triplestore/impl"
)

// Order determines which triple role is stored at which level of an [Index].
// It is named after the roles at the root, branch and leaf level, e.g. [SOP]
// stores subjects at the root, objects at the branch and predicates at the leaf level.
type Order uint8

const (
	SPO Order = iota
	SOP
	PSO
	POS
	OSP
	OPS
)

// NumOrders is the number of distinct orders.
const NumOrders = 6

var orderPositions = [NumOrders][3]impl.Position{
	SPO: {impl.Subject, impl.Predicate, impl.Object},
	SOP: {impl.Subject, impl.Object, impl.Predicate},
	PSO: {impl.Predicate, impl.Subject, impl.Object},
	POS: {impl.Predicate, impl.Object, impl.Subject},
	OSP: {impl.Object, impl.Subject, impl.Predicate},
	OPS: {impl.Object, impl.Predicate, impl.Subject},
}

var orderNames = [NumOrders]string{
	SPO: "spo",
	SOP: "sop",
	PSO: "pso",
	POS: "pos",
	OSP: "osp",
	OPS: "ops",
}

// Orders returns all valid orders, in ascending order.
func Orders() []Order {
	return []Order{SPO, SOP, PSO, POS, OSP, OPS}
}

// Valid checks if this is a known order.
func (order Order) Valid() bool {
	return order < NumOrders
}

// Positions returns the triple roles stored at the root, branch and leaf level respectively.
func (order Order) Positions() [3]impl.Position {
	return orderPositions[order]
}

// Project maps a triple onto the keys of the root, branch and leaf levels.
func (order Order) Project(triple impl.Triple) (a, b, c impl.ID) {
	positions := orderPositions[order]
	return triple.Get(positions[0]), triple.Get(positions[1]), triple.Get(positions[2])
}

// Triple is the inverse of Project.
// It re-assembles the triple stored under the root, branch and leaf keys a, b and c.
func (order Order) Triple(a, b, c impl.ID) (triple impl.Triple) {
	positions := orderPositions[order]
	triple.Set(positions[0], a)
	triple.Set(positions[1], b)
	triple.Set(positions[2], c)
	return triple
}

func (order Order) String() string {
	if !order.Valid() {
		return fmt.Sprintf("Order(%d)", uint8(order))
	}
	return orderNames[order]
}

// ParseOrder parses an order from its name, e.g. "spo".
// Parsing is case-insensitive.
func ParseOrder(name string) (Order, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for order, candidate := range orderNames {
		if candidate == name {
			return Order(order), nil
		}
	}
	return 0, fmt.Errorf("unknown index order %q", name)
}

// ParseOrders parses a comma-separated list of orders.
func ParseOrders(names string) ([]Order, error) {
	var orders []Order
	for _, name := range strings.Split(names, ",") {
		if strings.TrimSpace(name) == "" {
			continue
		}
		order, err := ParseOrder(name)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, nil
}
