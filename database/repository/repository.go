package repository

import (
	auditRepo "slotify/database/repository/audit"
	availabilityRepo "slotify/database/repository/availability"
	bookingRepo "slotify/database/repository/booking"
	catalogRepo "slotify/database/repository/catalog"
	exceptionRepo "slotify/database/repository/exception"
)

// Re-export the repository interfaces and constructors.

type AvailabilityRepository = availabilityRepo.AvailabilityRepository

var NewMongoAvailabilityRepo = availabilityRepo.NewMongoAvailabilityRepo

type ExceptionRepository = exceptionRepo.ExceptionRepository

var NewMongoExceptionRepo = exceptionRepo.NewMongoExceptionRepo

type BookingRepository = bookingRepo.BookingRepository

var NewMongoBookingRepo = bookingRepo.NewMongoBookingRepo

type AuditRepository = auditRepo.AuditRepository

var NewMongoAuditRepo = auditRepo.NewMongoAuditRepo

type CatalogRepository = catalogRepo.CatalogRepository

var NewMongoCatalogRepo = catalogRepo.NewMongoCatalogRepo
