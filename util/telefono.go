package util

// MinDigitosTelefono is the minimum digit count for a WhatsApp number with
// country code (e.g. 5493854123456).
const MinDigitosTelefono = 10

// NormalizarTelefono strips every non-digit character from a phone number.
// Duplicate detection and the WhatsApp contact link both work on this form.
func NormalizarTelefono(telefono string) string {
	digits := make([]byte, 0, len(telefono))
	for i := 0; i < len(telefono); i++ {
		if telefono[i] >= '0' && telefono[i] <= '9' {
			digits = append(digits, telefono[i])
		}
	}
	return string(digits)
}

// TelefonoValido reports whether the number still has enough digits after
// normalization.
func TelefonoValido(telefono string) bool {
	return len(NormalizarTelefono(telefono)) >= MinDigitosTelefono
}
