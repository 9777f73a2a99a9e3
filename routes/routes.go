package routes

import (
	"net/http"

	"trippens/auth"
	"trippens/awards"
	"trippens/categories"
	"trippens/contact"
	"trippens/enquiries"
	"trippens/hero"
	"trippens/landscapes"
	"trippens/middleware"
	"trippens/public"
	"trippens/ratelim"
	"trippens/team"
	"trippens/testimonials"
	"trippens/tours"
	"trippens/uploads"

	"github.com/julienschmidt/httprouter"
)

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/uploads/*filepath", http.Dir("static/uploads"))
}

func AddAuthRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/auth/register", rl.Limit(auth.Register))
	router.POST("/api/auth/login", rl.Limit(auth.Login))
	router.GET("/api/auth/me", middleware.Authenticate(auth.Me))
	router.POST("/api/auth/logout", middleware.Authenticate(auth.Logout))
}

func AddAdminRoutes(router *httprouter.Router, enq *enquiries.Handler) {
	admin := middleware.Authenticate

	router.POST("/api/admin/categories", admin(categories.CreateCategory))
	router.GET("/api/admin/categories", admin(categories.ListCategories))
	router.PATCH("/api/admin/categories/:id", admin(categories.UpdateCategory))
	router.PATCH("/api/admin/categories/:id/status", admin(categories.UpdateCategoryStatus))

	router.POST("/api/admin/tours", admin(tours.CreateTour))
	router.GET("/api/admin/tours", admin(tours.ListTours))
	router.GET("/api/admin/highlighted-tours", admin(tours.ListToursInHighlight))
	router.GET("/api/admin/tours/:id", admin(tours.GetTour))
	router.PATCH("/api/admin/tours/:id", admin(tours.UpdateTour))
	router.PATCH("/api/admin/tours/:id/status", admin(tours.UpdateTourStatus))
	router.PATCH("/api/admin/tours/:id/highlight", admin(tours.UpdateTourHighlight))
	router.DELETE("/api/admin/tours/:id", admin(tours.DeleteTour))

	router.POST("/api/admin/hero-carousel", admin(hero.CreateSlide))
	router.GET("/api/admin/hero-carousel", admin(hero.ListSlides))
	router.PATCH("/api/admin/hero-carousel/:id/image", admin(hero.UpdateSlideImage))
	router.PATCH("/api/admin/hero-carousel/:id/status", admin(hero.UpdateSlideStatus))

	router.POST("/api/admin/landscapes", admin(landscapes.CreateLandscape))
	router.GET("/api/admin/landscapes", admin(landscapes.ListLandscapes))
	router.PATCH("/api/admin/landscapes/:id", admin(landscapes.UpdateLandscape))
	router.PATCH("/api/admin/landscapes/:id/status", admin(landscapes.UpdateLandscapeStatus))

	router.POST("/api/admin/testimonials", admin(testimonials.CreateTestimonial))
	router.GET("/api/admin/testimonials", admin(testimonials.ListTestimonials))
	router.GET("/api/admin/testimonials/:id", admin(testimonials.GetTestimonial))
	router.PATCH("/api/admin/testimonials/:id", admin(testimonials.UpdateTestimonial))
	router.PATCH("/api/admin/testimonials/:id/status", admin(testimonials.UpdateTestimonialStatus))

	router.POST("/api/admin/awards", admin(awards.CreateAward))
	router.GET("/api/admin/awards", admin(awards.ListAwards))
	router.GET("/api/admin/awards/:id", admin(awards.GetAward))
	router.PATCH("/api/admin/awards/:id", admin(awards.UpdateAward))
	router.PATCH("/api/admin/awards/:id/status", admin(awards.UpdateAwardStatus))

	router.POST("/api/admin/team", admin(team.CreateMember))
	router.GET("/api/admin/team", admin(team.ListMembers))
	router.GET("/api/admin/team/:id", admin(team.GetMember))
	router.PATCH("/api/admin/team/:id", admin(team.UpdateMember))
	router.PATCH("/api/admin/team/:id/status", admin(team.UpdateMemberStatus))

	router.GET("/api/admin/contact", admin(contact.GetContact))
	router.PUT("/api/admin/contact", admin(contact.UpsertContact))
	router.PATCH("/api/admin/contact/:id", admin(contact.UpdateContact))

	router.GET("/api/admin/enquiries", admin(enq.List))
	router.GET("/api/admin/enquiries/export", admin(enq.ExportPDF))

	router.POST("/api/admin/uploads", admin(uploads.UploadImage))
}

func AddPublicRoutes(router *httprouter.Router, rl *ratelim.RateLimiter, enq *enquiries.Handler) {
	router.GET("/api/public/with-highlighted-tours", public.WithHighlightedTours)
	router.GET("/api/public/categories/:id/tours", public.CategoryWithAllTours)
	router.GET("/api/public/tours-by-landscape/:landscape", public.ToursByLandscape)
	router.GET("/api/public/tours/:id", public.GetTour)
	router.GET("/api/public/hero-carousel", public.HeroCarousel)
	router.GET("/api/public/testimonials", public.Testimonials)
	router.GET("/api/public/awards", public.Awards)
	router.GET("/api/public/team", public.Team)
	router.GET("/api/public/landscapes", public.Landscapes)
	router.GET("/api/public/contact", contact.PublicContact)
	router.GET("/api/public/whatsapp-qr", contact.WhatsappQR)

	router.POST("/api/public/enquiries/email", rl.Limit(enq.SubmitEmail))
	router.POST("/api/public/enquiries/whatsapp", rl.Limit(enq.SubmitWhatsapp))
}
