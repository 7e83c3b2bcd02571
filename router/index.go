package router

import (
	"travel_booking/handler"
	"travel_booking/middleware"
	"travel_booking/validate"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func SetupRoutes(app *fiber.App) {
	api := app.Group("/api", logger.New())
	v1 := api.Group("/v1", logger.New())

	auth := v1.Group("/auth")
	auth.Post("/login", handler.Login)
	auth.Post("/refresh-token", handler.RefreshToken)

	account := v1.Group("/account", logger.New())
	account.Get("/", middleware.Protected(), handler.GetAccounts)
	account.Get("/me", middleware.Protected(), handler.Me)
	account.Post("/", middleware.Protected(), validate.CreateAccount(), handler.CreateAccount)
	account.Post("/change-password", middleware.Protected(), validate.AdminChangePassword(), handler.AdminChangePassword)
	account.Patch("/:accountId/active", middleware.Protected(), validate.GetById("accountId"), handler.ActiveAccount)
	account.Put("/:accountId/roles", middleware.Protected(), validate.GetById("accountId"), handler.AssignRoles)

	role := v1.Group("/role", logger.New())
	role.Get("/", middleware.Protected(), handler.GetRoles)
	role.Get("/permission-groups", middleware.Protected(), handler.GetPermissionGroups)
	role.Post("/", middleware.Protected(), validate.CreateRole(), handler.CreateRole)
	role.Put("/:roleId", middleware.Protected(), validate.GetById("roleId"), validate.UpdateRole(), handler.UpdateRole)
	role.Delete("/:roleId", middleware.Protected(), validate.GetById("roleId"), handler.DeleteRole)

	customerAdmin := v1.Group("/customer", logger.New())
	customerAdmin.Get("/", middleware.Protected(), handler.GetCustomers)

	province := v1.Group("/province", logger.New())
	province.Get("/", handler.GetProvinces)
	province.Post("/", middleware.Protected(), handler.CreateProvince)
	province.Delete("/:provinceId", middleware.Protected(), validate.GetById("provinceId"), handler.DeleteProvince)

	category := v1.Group("/place-category", logger.New())
	category.Get("/", handler.GetPlaceCategories)
	category.Post("/", middleware.Protected(), handler.CreatePlaceCategory)
	category.Delete("/:categoryId", middleware.Protected(), validate.GetById("categoryId"), handler.DeletePlaceCategory)

	place := v1.Group("/place", logger.New())
	place.Get("/", handler.GetPlaces)
	place.Post("/", middleware.Protected(), validate.CreatePlace(), handler.CreatePlace)
	place.Delete("/", middleware.Protected(), validate.Delete(), handler.DeletePlace)
	place.Put("/:placeId", middleware.Protected(), validate.GetById("placeId"), validate.EditPlace(), handler.EditPlace)
	place.Post("/:placeId/images", middleware.Protected(), validate.GetById("placeId"), handler.UploadPlaceImages)
	place.Get("/:slug", handler.GetPlaceDetail)

	v1.Post("/cloudinary-signature", middleware.Protected(), handler.GenerateSignature)

	property := v1.Group("/property", logger.New())
	property.Get("/", handler.GetProperties)
	property.Get("/facilities", handler.GetFacilities)
	property.Get("/amenities", handler.GetAmenities)
	property.Get("/mine", middleware.Protected(), handler.GetMyProperties)
	property.Post("/", middleware.Protected(), validate.CreateProperty(), handler.CreateProperty)
	property.Put("/:propertyId", middleware.Protected(), validate.GetById("propertyId"), validate.EditProperty(), handler.EditProperty)
	property.Delete("/", middleware.Protected(), validate.Delete(), handler.DeleteProperty)
	property.Get("/:slug", handler.GetPropertyDetail)

	roomProperty := v1.Group("/room-property", logger.New())
	roomProperty.Post("/", middleware.Protected(), validate.CreateRoomProperty(), handler.CreateRoomProperty)
	roomProperty.Put("/:roomPropertyId", middleware.Protected(), validate.GetById("roomPropertyId"), validate.EditRoomProperty(), handler.EditRoomProperty)
	roomProperty.Delete("/", middleware.Protected(), validate.Delete(), handler.DeleteRoomProperty)
	roomProperty.Get("/:roomPropertyId/availability", validate.GetById("roomPropertyId"), handler.GetRoomAvailability)

	room := v1.Group("/room", logger.New())
	room.Post("/", middleware.Protected(), validate.CreateRoom(), handler.CreateRoom)
	room.Post("/batch", middleware.Protected(), validate.CreateRoomBatch(), handler.CreateRoomBatch)
	room.Put("/:roomId", middleware.Protected(), validate.GetById("roomId"), validate.EditRoom(), handler.EditRoom)
	room.Delete("/", middleware.Protected(), validate.Delete(), handler.DeleteRoom)

	transport := v1.Group("/transportation", logger.New())
	transport.Get("/mine", middleware.Protected(), handler.GetMyTransportations)
	transport.Post("/", middleware.Protected(), validate.CreateTransportation(), handler.CreateTransportation)
	transport.Put("/:companyId", middleware.Protected(), validate.GetById("companyId"), validate.EditTransportation(), handler.EditTransportation)

	busProperty := v1.Group("/bus-property", logger.New())
	busProperty.Post("/", middleware.Protected(), validate.CreateBusProperty(), handler.CreateBusProperty)
	busProperty.Put("/:busPropertyId", middleware.Protected(), validate.GetById("busPropertyId"), validate.EditBusProperty(), handler.EditBusProperty)

	bus := v1.Group("/bus", logger.New())
	bus.Post("/", middleware.Protected(), validate.CreateBus(), handler.CreateBus)
	bus.Put("/:busId", middleware.Protected(), validate.GetById("busId"), validate.EditBus(), handler.EditBus)
	bus.Get("/:busId/seats", middleware.Protected(), validate.GetById("busId"), handler.GetBusSeats)

	route := v1.Group("/route", logger.New())
	route.Get("/", handler.GetRoutes)
	route.Post("/", middleware.Protected(), validate.CreateRoute(), handler.CreateRoute)
	route.Delete("/:routeId", middleware.Protected(), validate.GetById("routeId"), handler.DeleteRoute)

	schedule := v1.Group("/schedule", logger.New())
	schedule.Get("/search", handler.SearchSchedules)
	schedule.Post("/", middleware.Protected(), validate.CreateSchedule(), handler.CreateSchedule)
	schedule.Post("/batch", middleware.Protected(), validate.CreateScheduleBatch(), handler.CreateScheduleBatch)
	schedule.Put("/:scheduleId", middleware.Protected(), validate.GetById("scheduleId"), validate.UpdateSchedule(), handler.UpdateSchedule)
	schedule.Patch("/:scheduleId/cancel", middleware.Protected(), validate.GetById("scheduleId"), handler.CancelSchedule)
	schedule.Get("/:code", handler.GetScheduleDetail)
	schedule.Get("/:code/seats", middleware.OptionalJWT(), middleware.OptionalAuth(), handler.GetScheduleSeats)
	schedule.Post("/:code/hold", middleware.OptionalJWT(), middleware.OptionalAuth(), validate.HoldSeats(), handler.HoldSeats)
	schedule.Post("/:code/release", middleware.OptionalJWT(), middleware.OptionalAuth(), validate.ReleaseSeats(), handler.ReleaseSeats)
	schedule.Get("/:code/held", middleware.OptionalJWT(), middleware.OptionalAuth(), handler.GetHeldSeatsBySession)
	schedule.Post("/:code/purchase", middleware.OptionalJWT(), middleware.OptionalAuth(), validate.PurchaseSeats(), handler.PurchaseSeats)

	v1.Get("/ws/schedule/:scheduleId", websocket.New(handler.ScheduleSeatWebsocket))

	booking := v1.Group("/booking", logger.New())
	booking.Post("/room", middleware.OptionalJWT(), middleware.OptionalAuth(), validate.BookRoom(), handler.BookRoom)
	booking.Get("/", middleware.Protected(), handler.GetBookings)
	booking.Get("/mine", middleware.OptionalJWT(), middleware.OptionalAuth(), middleware.CustomerRequired(), handler.GetMyBookings)
	booking.Post("/:code/confirm", middleware.OptionalJWT(), middleware.OptionalAuth(), handler.ConfirmBooking)
	booking.Post("/:code/cancel", middleware.OptionalJWT(), middleware.OptionalAuth(), handler.CancelBooking)
	booking.Get("/:code", middleware.OptionalJWT(), middleware.OptionalAuth(), handler.GetBookingDetail)

	trip := v1.Group("/trip", middleware.OptionalJWT(), middleware.OptionalAuth())
	trip.Get("/shared/:token", handler.ResolveSharedTrip)
	trip.Post("/", middleware.CustomerRequired(), validate.CreateTrip(), handler.CreateTrip)
	trip.Get("/", middleware.CustomerRequired(), handler.GetMyTrips)
	trip.Get("/:tripId", middleware.CustomerRequired(), validate.GetById("tripId"), handler.GetTripDetail)
	trip.Put("/:tripId", middleware.CustomerRequired(), validate.GetById("tripId"), validate.EditTrip(), handler.EditTrip)
	trip.Delete("/:tripId", middleware.CustomerRequired(), validate.GetById("tripId"), handler.DeleteTrip)
	trip.Post("/:tripId/days/:dayIndex/places", middleware.CustomerRequired(), validate.GetById("tripId"), validate.AddTripPlace(), handler.AddTripPlace)
	trip.Delete("/:tripId/places/:tripPlaceId", middleware.CustomerRequired(), validate.GetById("tripId"), handler.RemoveTripPlace)
	trip.Put("/:tripId/days/:dayIndex/reorder", middleware.CustomerRequired(), validate.GetById("tripId"), validate.ReorderTripPlaces(), handler.ReorderTripPlaces)
	trip.Post("/:tripId/share", middleware.CustomerRequired(), validate.GetById("tripId"), validate.ShareTrip(), handler.ShareTrip)
	trip.Delete("/:tripId/share", middleware.CustomerRequired(), validate.GetById("tripId"), handler.RevokeTripShare)

	budget := trip.Group("/:tripId/budget", middleware.CustomerRequired(), validate.GetById("tripId"))
	budget.Put("/", validate.SetBudget(), handler.SetBudget)
	budget.Get("/", handler.GetBudget)
	budget.Get("/summary", handler.GetExpenseSummary)
	budget.Post("/expense", validate.AddExpense(), handler.AddExpense)
	budget.Put("/expense/:expenseId", validate.EditExpense(), handler.EditExpense)
	budget.Delete("/expense/:expenseId", handler.DeleteExpense)

	customer := v1.Group("/me", logger.New())
	customer.Post("/register", validate.RegisterCustomer(), handler.RegisterCustomer)
	customer.Post("/login", handler.CustomerLogin)
	customer.Post("/refresh-token", handler.RefreshCustomerToken)
	customer.Get("/", middleware.OptionalJWT(), middleware.OptionalAuth(), handler.GetCurrentCustomer)
	customer.Put("/", middleware.OptionalJWT(), middleware.OptionalAuth(), middleware.CustomerRequired(), handler.EditCustomer)
	customer.Post("/change-password", middleware.OptionalJWT(), middleware.OptionalAuth(), validate.ChangePasswordCustomer(), handler.ChangePasswordCustomer)
	customer.Post("/forgot-password", validate.ForgotPassword(), handler.ForgotPassword)
	customer.Post("/reset-password", validate.ResetPassword(), handler.ResetPassword)

	statistic := v1.Group("/statistic", logger.New())
	statistic.Get("/admin", middleware.Protected(), handler.GetAdminStatistics)
	statistic.Get("/hotel", middleware.Protected(), handler.GetHotelOwnerStatistics)
	statistic.Get("/transport", middleware.Protected(), handler.GetTransportOwnerStatistics)
}
