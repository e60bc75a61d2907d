package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")

	// Calculadora comercial: la validación rechaza el cálculo completo,
	// nunca hay resultados parciales.
	ErrInvalidLineItem = errors.New("línea inválida: cantidad o precio negativo")
	ErrInvalidDiscount = errors.New("descuento inválido")
	ErrInvalidVATRate  = errors.New("tasa de IVA inválida")

	// Ensamblador de documentos.
	ErrInvalidSectionUnit = errors.New("unidad de sección inválida: altura negativa o no finita")
	ErrInvalidPageLayout  = errors.New("configuración de página inválida: presupuesto de contenido no positivo")

	// Exportación (rasterización externa).
	ErrExportFailed = errors.New("exportación del documento fallida")
)
