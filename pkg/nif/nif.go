// Package nif valida identificadores fiscales españoles (DNI, NIE y CIF).
package nif

import (
	"fmt"
	"strings"
	"unicode"
)

// Kind tipo de identificador detectado.
type Kind string

const (
	KindDNI Kind = "DNI"
	KindNIE Kind = "NIE"
	KindCIF Kind = "CIF"
)

// letras de control de DNI/NIE (módulo 23).
const dniLetters = "TRWAGMYFPDXBNJZSQVHLCKE"

// letras de control de CIF, indexadas por el dígito de control.
const cifLetters = "JABCDEFGHI"

// Normalize elimina espacios, puntos y guiones y pasa a mayúsculas.
// "12.345.678-z" -> "12345678Z".
func Normalize(id string) string {
	var b strings.Builder
	for _, r := range id {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToUpper(r))
		}
	}
	return b.String()
}

// Validate comprueba formato y carácter de control. Devuelve el tipo detectado.
func Validate(id string) (Kind, error) {
	s := Normalize(id)
	if len(s) != 9 {
		return "", fmt.Errorf("nif: longitud inválida (%d), se esperan 9 caracteres", len(s))
	}
	switch first := s[0]; {
	case first >= '0' && first <= '9':
		return KindDNI, validateDNI(s)
	case first == 'X' || first == 'Y' || first == 'Z':
		// el prefijo del NIE equivale a 0, 1 o 2 delante del número
		prefix := byte('0' + strings.IndexByte("XYZ", first))
		return KindNIE, validateDNI(string(prefix)+s[1:])
	case strings.IndexByte("ABCDEFGHJNPQRSUVW", first) >= 0:
		return KindCIF, validateCIF(s)
	default:
		return "", fmt.Errorf("nif: prefijo %q no reconocido", first)
	}
}

// ComputeDNILetter calcula la letra de control para los 8 dígitos de un DNI.
func ComputeDNILetter(digits string) (byte, error) {
	if len(digits) != 8 || !allDigits(digits) {
		return 0, fmt.Errorf("nif: se requieren 8 dígitos, se recibió %q", digits)
	}
	var n int
	for i := 0; i < len(digits); i++ {
		n = n*10 + int(digits[i]-'0')
	}
	return dniLetters[n%23], nil
}

func validateDNI(s string) error {
	expected, err := ComputeDNILetter(s[:8])
	if err != nil {
		return err
	}
	if s[8] != expected {
		return fmt.Errorf("nif: letra de control inválida: esperada %c, recibida %c", expected, s[8])
	}
	return nil
}

func validateCIF(s string) error {
	body := s[1:8]
	if !allDigits(body) {
		return fmt.Errorf("nif: CIF con cuerpo no numérico %q", body)
	}
	var sum int
	for i := 0; i < len(body); i++ {
		d := int(body[i] - '0')
		if i%2 == 0 {
			// posiciones impares: se dobla y se suman sus cifras
			d *= 2
			d = d/10 + d%10
		}
		sum += d
	}
	digit := (10 - sum%10) % 10
	control := s[8]

	switch s[0] {
	case 'P', 'Q', 'R', 'S', 'N', 'W':
		if control != cifLetters[digit] {
			return fmt.Errorf("nif: control de CIF inválido: esperado %c, recibido %c", cifLetters[digit], control)
		}
	case 'A', 'B', 'E', 'H':
		if control != byte('0'+digit) {
			return fmt.Errorf("nif: control de CIF inválido: esperado %d, recibido %c", digit, control)
		}
	default:
		if control != byte('0'+digit) && control != cifLetters[digit] {
			return fmt.Errorf("nif: control de CIF inválido: recibido %c", control)
		}
	}
	return nil
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
