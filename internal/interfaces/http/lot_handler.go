package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/zonafranca-api/internal/application/dto"
	appledger "github.com/jhoicas/zonafranca-api/internal/application/ledger"
	"github.com/jhoicas/zonafranca-api/internal/domain/repository"
)

// LotHandler maneja las peticiones HTTP del libro mayor de lotes (protegido).
type LotHandler struct {
	ledger    *appledger.LedgerUseCase
	query     *appledger.LotQueryUseCase
	reconcile *appledger.ReconcileUseCase
}

// NewLotHandler construye el handler.
func NewLotHandler(ledger *appledger.LedgerUseCase, query *appledger.LotQueryUseCase, reconcile *appledger.ReconcileUseCase) *LotHandler {
	return &LotHandler{ledger: ledger, query: query, reconcile: reconcile}
}

// Admit godoc
// @Summary      Admitir un lote nuevo
// @Description  Crea el lote, la transacción ADMISSION y la entrada de auditoría en una sola tx.
// @Tags         lots
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdmitLotRequest  true  "part_id, customer_id, quantity (> 0)"
// @Success      201   {object}  dto.LotResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/lots [post]
func (h *LotHandler) Admit(c *fiber.Ctx) error {
	var in dto.AdmitLotRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	input := appledger.AdmissionInput{
		PartID:            in.PartID,
		CustomerID:        in.CustomerID,
		StorageLocationID: in.StorageLocationID,
		OriginalQuantity:  in.Quantity,
		SourceDocument:    in.SourceDocument,
		ManifestNumber:    in.ManifestNumber,
		BillOfLading:      in.BillOfLading,
		TotalValue:        in.TotalValue,
		UserID:            GetUserID(c),
	}
	if in.AdmissionDate != nil {
		input.AdmissionDate = *in.AdmissionDate
	}
	lot, err := h.ledger.RecordAdmission(c.Context(), input)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToLotResponse(lot))
}

// Adjust godoc
// @Summary      Ajustar la cantidad vigente de un lote
// @Description  Fija new_quantity escribiendo una transacción ADJUSTMENT con el delta.
//
//	expected_old_quantity (opcional) activa el guard de concurrencia optimista:
//	si difiere de la cantidad almacenada se responde 409 sin escribir nada.
//
// @Tags         lots
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del lote"
// @Param        body  body  dto.AdjustQuantityRequest  true  "new_quantity (>= 0), reason"
// @Success      200   {object}  dto.LotResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/lots/{id}/adjust [post]
func (h *LotHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustQuantityRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	lot, err := h.ledger.AdjustQuantity(c.Context(), appledger.AdjustmentInput{
		LotID:               c.Params("id"),
		NewQuantity:         in.NewQuantity,
		Reason:              in.Reason,
		ExpectedOldQuantity: in.ExpectedOldQuantity,
		UserID:              GetUserID(c),
	})
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.ToLotResponse(lot))
}

// Void godoc
// @Summary      Anular un lote (irreversible)
// @Description  Escribe una transacción REMOVAL por la cantidad vigente completa y deja el lote en VOIDED.
// @Tags         lots
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del lote"
// @Param        body  body  dto.VoidLotRequest  true  "reason"
// @Success      200   {object}  dto.LotResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/lots/{id}/void [post]
func (h *LotHandler) Void(c *fiber.Ctx) error {
	var in dto.VoidLotRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	lot, err := h.ledger.VoidLot(c.Context(), c.Params("id"), in.Reason, GetUserID(c))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.ToLotResponse(lot))
}

// ChangeStatus godoc
// @Summary      Cambiar el estado explícito de un lote
// @Description  Solo IN_STOCK, RESERVED y ON_HOLD son asignables; DEPLETED y VOIDED los deriva el sistema.
// @Tags         lots
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del lote"
// @Param        body  body  dto.ChangeStatusRequest  true  "status, reason"
// @Success      200   {object}  dto.LotResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/lots/{id}/status [post]
func (h *LotHandler) ChangeStatus(c *fiber.Ctx) error {
	var in dto.ChangeStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	lot, err := h.ledger.ChangeStatus(c.Context(), c.Params("id"), in.Status, in.Reason, GetUserID(c))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.ToLotResponse(lot))
}

// Reconcile godoc
// @Summary      Reconciliar la cantidad cacheada contra el libro de transacciones
// @Description  La suma de transacciones es la fuente de verdad; si la columna cacheada diverge se corrige y se audita.
// @Tags         lots
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del lote"
// @Success      200  {object}  dto.ReconcileResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/lots/{id}/reconcile [post]
func (h *LotHandler) Reconcile(c *fiber.Ctx) error {
	res, err := h.reconcile.Reconcile(c.Context(), c.Params("id"), GetUserID(c))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.ReconcileResponse{
		Lot:       dto.ToLotResponse(res.Lot),
		LedgerSum: res.LedgerSum,
		Adjusted:  res.Adjusted,
	})
}

// GetByID godoc
// @Summary      Obtener un lote
// @Tags         lots
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del lote"
// @Success      200  {object}  dto.LotResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/lots/{id} [get]
func (h *LotHandler) GetByID(c *fiber.Ctx) error {
	lot, err := h.query.GetLot(c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.ToLotResponse(lot))
}

// List godoc
// @Summary      Listar lotes
// @Tags         lots
// @Security     Bearer
// @Produce      json
// @Param        status       query  string  false  "Filtrar por estado"
// @Param        customer_id  query  string  false  "Filtrar por importador"
// @Param        part_id      query  string  false  "Filtrar por referencia"
// @Param        limit        query  int     false  "Máximo de resultados (default 20)"
// @Param        offset       query  int     false  "Desplazamiento"
// @Success      200  {array}  dto.LotResponse
// @Router       /api/lots [get]
func (h *LotHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	filter := repository.LotFilter{
		Status:     c.Query("status"),
		CustomerID: c.Query("customer_id"),
		PartID:     c.Query("part_id"),
	}
	lots, err := h.query.ListLots(filter, page.Limit, page.Offset)
	if err != nil {
		return errorResponse(c, err)
	}
	out := make([]*dto.LotResponse, 0, len(lots))
	for _, l := range lots {
		out = append(out, dto.ToLotResponse(l))
	}
	return c.JSON(fiber.Map{"total": len(out), "lots": out})
}

// ListTransactions godoc
// @Summary      Libro mayor de un lote
// @Description  Transacciones en orden cronológico; su suma es la cantidad vigente.
// @Tags         lots
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del lote"
// @Param        limit   query  int     false  "Máximo de resultados (default 20)"
// @Param        offset  query  int     false  "Desplazamiento"
// @Success      200  {array}  dto.TransactionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/lots/{id}/transactions [get]
func (h *LotHandler) ListTransactions(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	txs, err := h.query.ListTransactions(c.Params("id"), page.Limit, page.Offset)
	if err != nil {
		return errorResponse(c, err)
	}
	out := make([]*dto.TransactionResponse, 0, len(txs))
	for _, t := range txs {
		out = append(out, dto.ToTransactionResponse(t))
	}
	return c.JSON(fiber.Map{"total": len(out), "transactions": out})
}

// ListStatusHistory godoc
// @Summary      Historial de estados de un lote
// @Tags         lots
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del lote"
// @Param        limit   query  int     false  "Máximo de resultados (default 20)"
// @Param        offset  query  int     false  "Desplazamiento"
// @Success      200  {array}  dto.StatusHistoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/lots/{id}/status-history [get]
func (h *LotHandler) ListStatusHistory(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	hs, err := h.query.ListStatusHistory(c.Params("id"), page.Limit, page.Offset)
	if err != nil {
		return errorResponse(c, err)
	}
	out := make([]*dto.StatusHistoryResponse, 0, len(hs))
	for _, s := range hs {
		out = append(out, dto.ToStatusHistoryResponse(s))
	}
	return c.JSON(fiber.Map{"total": len(out), "history": out})
}

// Certificate godoc
// @Summary      Acta de admisión en PDF
// @Tags         lots
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID del lote"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/lots/{id}/certificate [get]
func (h *LotHandler) Certificate(c *fiber.Ctx) error {
	pdfBytes, err := h.query.AdmissionCertificatePDF(c.Context(), c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="acta-admision-`+c.Params("id")+`.pdf"`)
	return c.Send(pdfBytes)
}
