package pdf

// Exportados solo para pruebas.
var (
	FormatEuros     = formatEuros
	FormatThousands = formatThousands
)
