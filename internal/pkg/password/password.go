package password

import (
	"sync"

	"golang.org/x/crypto/bcrypt"
)

var dummyHash = sync.OnceValue(func() []byte {
	hashed, err := bcrypt.GenerateFromPassword([]byte("micropost-dummy-password"), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	return hashed
})

func Hash(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func Compare(hash, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
}

// Matches reports whether plain verifies against hash.
func Matches(hash, plain string) bool {
	return Compare(hash, plain) == nil
}

// Burn spends the same bcrypt work as Matches against a fixed hash. Call it
// when there is no stored hash so unknown accounts answer as slowly as
// known ones.
func Burn(plain string) {
	_ = bcrypt.CompareHashAndPassword(dummyHash(), []byte(plain))
}
