package ledger

// DefaultLowStockThreshold umbral de stock bajo cuando la configuración no define otro.
const DefaultLowStockThreshold int64 = 10

// LowStockCrossed detecta el cruce descendente del umbral de stock bajo
// (disparo por flanco, no por nivel): true solo cuando la cantidad nueva queda
// en o bajo el umbral y la anterior estaba por encima. Ajustes sucesivos que
// permanecen bajo el umbral no re-disparan; subir sobre el umbral y volver a
// bajar re-arma el disparador.
func LowStockCrossed(oldQuantity, newQuantity, threshold int64) bool {
	return newQuantity <= threshold && oldQuantity > threshold
}
