// Package docs provides Swagger documentation for the API.
package docs

// @title Course Enrollment API
// @version 1.0
// @description Course enrollment platform with JWT session management
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@edulink.io

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Enter `Bearer ` followed by your JWT access token
