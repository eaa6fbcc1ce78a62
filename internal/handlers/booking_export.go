package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"cleopatra/internal/models"
)

const exportContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var exportColumns = []string{"ID", "Customer", "Date", "Location", "Status", "Attendees", "Staff", "Notes", "Created"}

// ExportBookings streams every booking as an xlsx workbook. Admin only.
func ExportBookings(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/bookings/export"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})
		cursor, err := db.Collection("bookings").Find(ctx, bson.M{}, opts)
		if err != nil {
			log.Error().Err(err).Msg("export bookings query failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		defer cursor.Close(ctx)

		bookings := make([]models.Booking, 0)
		if err := cursor.All(ctx, &bookings); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "decode error"})
			return
		}

		f, err := buildBookingWorkbook(bookings)
		if err != nil {
			log.Error().Err(err).Msg("export workbook build failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
			return
		}
		defer f.Close()

		fileName := fmt.Sprintf("bookings_%s.xlsx", time.Now().Format("2006-01-02"))
		c.Header("Content-Disposition", `attachment; filename="`+fileName+`"`)
		c.Header("Content-Type", exportContentType)

		if err := f.Write(c.Writer); err != nil {
			log.Error().Err(err).Msg("export write failed")
		}
	}
}

func buildBookingWorkbook(bookings []models.Booking) (*excelize.File, error) {
	f := excelize.NewFile()

	const sheetName = "Bookings"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		f.Close()
		return nil, err
	}
	f.SetActiveSheet(index)

	for i, column := range exportColumns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			f.Close()
			return nil, err
		}
		_ = f.SetCellValue(sheetName, cell, column)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	lastHeader, _ := excelize.CoordinatesToCellName(len(exportColumns), 1)
	_ = f.SetCellStyle(sheetName, "A1", lastHeader, headerStyle)

	for row, booking := range bookings {
		staff := ""
		if booking.StaffID != nil {
			staff = booking.StaffID.Hex()
		}
		values := []interface{}{
			booking.ID.Hex(),
			booking.UserID.Hex(),
			booking.Date.Format(time.RFC3339),
			booking.Location,
			booking.Status,
			booking.Attendees,
			staff,
			booking.Notes,
			booking.CreatedAt.Format(time.RFC3339),
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				f.Close()
				return nil, err
			}
			_ = f.SetCellValue(sheetName, cell, value)
		}
	}

	_ = f.SetColWidth(sheetName, "A", "B", 26)
	_ = f.SetColWidth(sheetName, "C", "I", 20)
	_ = f.DeleteSheet("Sheet1")

	return f, nil
}
