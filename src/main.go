package main

import (
	"io"
	"log"
	"net/http"
	"os"
	"path"
	"regexp"
	"time"

	"github.com/HeroHarith/Tickets-sub001/src/config"
	"github.com/HeroHarith/Tickets-sub001/src/db"
	"github.com/HeroHarith/Tickets-sub001/src/lib"
	"github.com/HeroHarith/Tickets-sub001/src/middlewares"
	"github.com/HeroHarith/Tickets-sub001/src/models"
	"github.com/HeroHarith/Tickets-sub001/src/store"
	"github.com/HeroHarith/Tickets-sub001/src/types"

	"github.com/covalenthq/lumberjack"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	apiPrefix string = "/api"
)

// svc is the storage service every handler talks to. Assigned once in main,
// replaced by tests with mocked adapters.
var svc *store.Service

var bookableDateValidatorFunc validator.Func = func(fl validator.FieldLevel) bool {
	date, ok := fl.Field().Interface().(string)
	datetime, err := time.Parse(config.TIME_PARSE_FORMAT, date)
	if err != nil {
		return false
	}
	if ok {
		today := time.Now()
		if today.After(datetime) {
			return false
		}
	}
	return true
}

var gtfield validator.Func = func(fl validator.FieldLevel) bool {
	date, ok := fl.Field().Interface().(string)
	datetime, err := time.Parse(config.TIME_PARSE_FORMAT, date)
	if err != nil {
		return false
	}
	field := fl.Parent().FieldByName(fl.Param())
	fieldValue := field.Interface().(string)
	fielddatetime, err := time.Parse(config.TIME_PARSE_FORMAT, fieldValue)
	if err != nil {
		return false
	}
	if ok {
		if fielddatetime.After(datetime) {
			return false
		}
	}
	return true
}

func initLogger() {
	cwd, _ := os.Getwd()
	serverLogs := path.Join(cwd, "logs", "server.log")
	apiLogs := path.Join(cwd, "logs", "api.log")
	gin.ForceConsoleColor()

	f, _ := os.Create(apiLogs)
	gin.DefaultWriter = io.MultiWriter(f, os.Stdout)
	log.SetOutput(&lumberjack.Logger{
		Filename:   serverLogs,
		MaxSize:    500,
		MaxBackups: 3,
		MaxAge:     30,
		Compress:   true,
	})
}

func initDb() {
	db := db.GetDb()
	err := db.AutoMigrate(
		&models.User{},
		&models.Event{},
		&models.TicketType{},
		&models.Ticket{},
		&models.Attendee{},
		&models.Speaker{},
		&models.Workshop{},
		&models.AddOn{},
		&models.Venue{},
		&models.Rental{},
		&models.Cashier{},
		&models.SubscriptionPlan{},
		&models.Subscription{},
	)
	if err != nil {
		log.Fatalf("error migration: %s", err.Error())
	}
}

func initScheduler() {
	if _, err := lib.CreateCronJob(func() {
		svc.CompleteElapsedRentals()
	}, 10*time.Minute); err != nil {
		log.Printf("Error scheduling rental sweep: %s\n", err.Error())
		return
	}
	sched, err := lib.GetScheduler()
	if err != nil {
		log.Println("An error has occurred. Check logs for info")
		return
	}
	sched.Start()
	log.Println("Jobs in queue:", len(sched.Jobs()))
}

func setupRouter() *gin.Engine {
	router := gin.Default()
	router.Use(middlewares.SecureHeaders)
	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, "ok")
	})
	return router
}

func apiv1Group(g *gin.Engine) *gin.RouterGroup {
	apiv1 := g.Group(apiPrefix)
	return apiv1
}

func publicRoutes(g *gin.Engine) *gin.RouterGroup {
	apiv1 := apiv1Group(g)
	publicEventHandlers(apiv1)
	return apiv1
}

func authorizedRoutes(g *gin.Engine) *gin.RouterGroup {
	authorized := g.Group(apiPrefix)
	authorized.Use(middlewares.AuthMiddleware)

	eventHandlers(authorized.Group("", middlewares.RequireRoles(types.ROLE_EVENT_MANAGER, types.ROLE_ADMIN)))
	ticketHandlers(authorized)
	paymentHandlers(authorized)
	subscriptionHandlers(authorized)
	rentalHandlers(authorized)

	centerOnly := authorized.Group("", middlewares.RequireRoles(types.ROLE_CENTER, types.ROLE_ADMIN))
	venueHandlers(centerOnly)
	cashierHandlers(centerOnly)

	return authorized
}

func main() {
	apiEnv := os.Getenv("API_ENV")
	if apiEnv == "local" {
		cwd, _ := os.Getwd()
		if err := godotenv.Load(path.Join(cwd, ".env")); err != nil {
			panic(err)
		}
	}
	initLogger()

	initDb()

	svc = store.NewService(
		db.GetDb(),
		lib.GetRedisClient(),
		lib.NewSMTPMailer(),
		lib.NewStripeGateway(),
		lib.NewQRGenerator(),
	)

	initScheduler()

	router := setupRouter()

	appHost := os.Getenv("APP_HOST")
	if apiEnv == "local" {
		router.Use(cors.Default())
	} else {
		cc := cors.DefaultConfig()
		cc.AllowMethods = append(cc.AllowMethods, "GET", "POST", "PATCH", "PUT", "DELETE", "HEAD")
		cc.AllowHeaders = append(cc.AllowHeaders, "Origin", "Authorization")
		cc.AllowOriginFunc = func(origin string) bool {
			match, _ := regexp.MatchString(appHost, origin)
			if match {
				return true
			}
			match, _ = regexp.MatchString("app:mobile", origin)
			return match
		}
		cc.AllowCredentials = true
		cc.AllowAllOrigins = false
		router.Use(cors.New(cc))
	}

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("bookabledate", bookableDateValidatorFunc)
		v.RegisterValidation("gtdate", gtfield)
	}

	publicRoutes(router)

	paymentWebhookRoute(router)

	authorizedRoutes(router)

	if err := router.Run(":9090"); err != nil {
		log.Fatalf("Failed to start server: %s", err)
	}
}
