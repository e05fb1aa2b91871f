package password

import "golang.org/x/crypto/bcrypt"

// Hash genera un hash bcrypt (con salt) a partir del password en texto plano.
// Dos llamadas con el mismo password producen hashes distintos; ambos verifican.
func Hash(plain string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// Verify compara el password en texto plano contra el hash almacenado.
// Un hash malformado cuenta como verificación fallida, nunca como pánico:
// bcrypt hace la comparación en tiempo constante por debajo.
func Verify(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
