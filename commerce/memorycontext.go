package commerce

import (
	"sync"
)

// InMemoryContext is a Context implementation holding product titles and
// carts in memory. It is made for testing only.
type InMemoryContext struct {
	mutex    *sync.Mutex
	currency string
	titles   map[string]string
	carts    map[string][]string
}

func NewInMemoryContext(currency string) *InMemoryContext {
	return &InMemoryContext{
		mutex:    &sync.Mutex{},
		currency: currency,
		titles:   make(map[string]string),
		carts:    make(map[string][]string),
	}
}

func (c *InMemoryContext) Currency() string {
	return c.currency
}

func (c *InMemoryContext) ProductTitle(productID string) (string, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	title, ok := c.titles[productID]
	if !ok {
		return productID, nil
	}
	return title, nil
}

func (c *InMemoryContext) SetProductTitle(productID, title string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.titles[productID] = title
}

func (c *InMemoryContext) ClearCart(email string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	delete(c.carts, email)
	return nil
}

func (c *InMemoryContext) AddToCart(email, productID string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.carts[email] = append(c.carts[email], productID)
}

func (c *InMemoryContext) CartContents(email string) []string {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	return append([]string(nil), c.carts[email]...)
}
