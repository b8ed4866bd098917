package mail

import (
	"fmt"
	"net/mail"
)

// Address is an email endpoint with an optional display name
type Address struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// Addr returns an Address without a display name
func Addr(email string) Address {
	return Address{Email: email}
}

// NamedAddr returns an Address with a display name
func NamedAddr(email, name string) Address {
	return Address{Email: email, Name: name}
}

// ParseAddress parses "Name <user@example.com>" or a bare address.
// Syntax checks beyond the RFC 5322 grammar are left to the remote service.
func ParseAddress(input string) (Address, error) {
	addr, err := mail.ParseAddress(input)
	if err != nil {
		return Address{}, fmt.Errorf("%w: address %q: %v", ErrInvalidArgument, input, err)
	}
	return Address{Email: addr.Address, Name: addr.Name}, nil
}

// ParseAddressList parses each input with ParseAddress, keeping order
func ParseAddressList(inputs []string) ([]Address, error) {
	list := make([]Address, 0, len(inputs))
	for _, in := range inputs {
		addr, err := ParseAddress(in)
		if err != nil {
			return nil, err
		}
		list = append(list, addr)
	}
	return list, nil
}

func (a Address) String() string {
	if a.Name == "" {
		return a.Email
	}
	return fmt.Sprintf("%s <%s>", a.Name, a.Email)
}
