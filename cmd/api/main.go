package main

import (
	"fmt"
	"net/http"

	"github.com/shiftdesk/timeclock-backend-go/internal/config"
	appHTTP "github.com/shiftdesk/timeclock-backend-go/internal/handler/http"
	"github.com/shiftdesk/timeclock-backend-go/internal/pkg/clock"
	"github.com/shiftdesk/timeclock-backend-go/internal/pkg/database"
	"github.com/shiftdesk/timeclock-backend-go/internal/pkg/jwt"
	"github.com/shiftdesk/timeclock-backend-go/internal/repository/postgresql"
	attendanceService "github.com/shiftdesk/timeclock-backend-go/internal/service/attendance"
	serviceAuth "github.com/shiftdesk/timeclock-backend-go/internal/service/auth"
	correctionService "github.com/shiftdesk/timeclock-backend-go/internal/service/correction"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	userRepo := postgresql.NewUserRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	breakRepo := postgresql.NewBreakRepository(db)
	correctionRepo := postgresql.NewCorrectionRepository(db)
	txManager := postgresql.NewTxManager(db)

	systemClock := clock.NewSystemClock()
	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)

	authService := serviceAuth.NewAuthService(userRepo, jwtService)
	attendanceSvc := attendanceService.NewAttendanceService(systemClock, attendanceRepo, breakRepo, correctionRepo)
	correctionSvc := correctionService.NewCorrectionService(systemClock, txManager, correctionRepo, attendanceRepo, breakRepo)

	authHandler := appHTTP.NewAuthHandler(jwtService, authService)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	correctionHandler := appHTTP.NewCorrectionHandler(correctionSvc)

	router := appHTTP.NewRouter(jwtService, authHandler, attendanceHandler, correctionHandler)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
