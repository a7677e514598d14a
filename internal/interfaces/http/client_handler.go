package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mdc-pro/mdcpro-api/internal/application/dto"
	"github.com/mdc-pro/mdcpro-api/internal/application/usecase"
)

// ClientHandler maneja cuentas, perfil y mascotas.
type ClientHandler struct {
	uc *usecase.ClientUseCase
}

// NewClientHandler construye el handler.
func NewClientHandler(uc *usecase.ClientUseCase) *ClientHandler {
	return &ClientHandler{uc: uc}
}

// List lista cuentas filtrando por rol/estado (solo admin).
// GET /api/clients?role=&status=
func (h *ClientHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	clients, err := h.uc.List(c.Context(), c.Query("role"), c.Query("status"), page)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(clients)
}

// GetByID devuelve una cuenta con sus mascotas (solo admin).
// GET /api/clients/:id
func (h *ClientHandler) GetByID(c *fiber.Ctx) error {
	client, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(client)
}

// UpdateStatus aprueba o suspende una cuenta (solo admin).
// PATCH /api/clients/:id/status
func (h *ClientHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateClientStatusRequest
	if !parseBody(c, &in) {
		return nil
	}
	if err := h.uc.UpdateStatus(c.Context(), c.Params("id"), in.Status); err != nil {
		return handleError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Delete elimina una cuenta (solo admin).
// DELETE /api/clients/:id
func (h *ClientHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return handleError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Profile devuelve el perfil del usuario autenticado.
// GET /api/profile
func (h *ClientHandler) Profile(c *fiber.Ctx) error {
	client, err := h.uc.GetByID(c.Context(), GetUserID(c))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(client)
}

// UpdateProfile edita el perfil del usuario autenticado.
// PUT /api/profile
func (h *ClientHandler) UpdateProfile(c *fiber.Ctx) error {
	var in dto.UpdateClientRequest
	if !parseBody(c, &in) {
		return nil
	}
	client, err := h.uc.UpdateProfile(c.Context(), GetUserID(c), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(client)
}

// UploadAvatar sube la foto de perfil (multipart, campo "avatar").
// POST /api/profile/avatar
func (h *ClientHandler) UploadAvatar(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "campo avatar requerido"})
	}
	f, err := fileHeader.Open()
	if err != nil {
		return handleError(c, err)
	}
	defer f.Close()

	url, err := h.uc.UploadAvatar(c.Context(), GetUserID(c), fileHeader.Filename, f)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(fiber.Map{"avatar_url": url})
}

// AddPet registra una mascota del usuario autenticado.
// POST /api/profile/pets
func (h *ClientHandler) AddPet(c *fiber.Ctx) error {
	var in dto.CreatePetRequest
	if !parseBody(c, &in) {
		return nil
	}
	pet, err := h.uc.AddPet(c.Context(), GetUserID(c), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(pet)
}

// ListPets lista las mascotas del usuario autenticado.
// GET /api/profile/pets
func (h *ClientHandler) ListPets(c *fiber.Ctx) error {
	pets, err := h.uc.ListPets(c.Context(), GetUserID(c))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(pets)
}

// DeletePet elimina una mascota.
// DELETE /api/profile/pets/:id
func (h *ClientHandler) DeletePet(c *fiber.Ctx) error {
	if err := h.uc.DeletePet(c.Context(), c.Params("id")); err != nil {
		return handleError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
