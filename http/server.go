package http

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/csrf"
	"github.com/gorilla/mux"
	"golang.org/x/oauth2"

	"chirper/domain"
)

// Server provides most of the http functionality of this app, namely routing,
// request handling, and middleware. It also performs authentication and
// authorization before handing things over to one of the crud services.
type Server struct {
	router *mux.Router
	us     domain.UserService
	os     domain.OAuthService
	ts     domain.TweetService
	fds    domain.FeedService
	sgs    domain.SuggestionService
	fs     domain.FollowService
	ls     domain.LikeService
	cs     domain.CommentService
	rs     domain.RetweetService
	ns     domain.NotificationService
	is     domain.ImageService
	github *oauth2.Config
}

// NewServer returns a new instance of the server, registers all necessary
// routes and gives their handlers access to the services passed in. CSRF
// protection is active whenever a csrf key is configured; handler tests run
// without one.
func NewServer(
	csrfKey []byte,
	isProd bool,
	github *oauth2.Config,
	us domain.UserService,
	os domain.OAuthService,
	ts domain.TweetService,
	fds domain.FeedService,
	sgs domain.SuggestionService,
	fs domain.FollowService,
	ls domain.LikeService,
	cs domain.CommentService,
	rs domain.RetweetService,
	ns domain.NotificationService,
	is domain.ImageService,
) *Server {

	// Construct a new Server with a gorilla router and the services passed in.
	s := &Server{
		router: mux.NewRouter(),
		us:     us,
		os:     os,
		ts:     ts,
		fds:    fds,
		sgs:    sgs,
		fs:     fs,
		ls:     ls,
		cs:     cs,
		rs:     rs,
		ns:     ns,
		is:     is,
		github: github,
	}

	// Register routes of the auth system.
	s.registerAuthRoutes(s.router)
	s.registerOAuthRoutes(s.router)

	// Register routes of the feed and engagement system.
	s.registerHomeRoutes(s.router)
	s.registerTweetRoutes(s.router)
	s.registerUserRoutes(s.router)

	// Serve stored images.
	s.router.PathPrefix("/" + domain.ImagesBaseDir + "/").
		Handler(http.StripPrefix("/"+domain.ImagesBaseDir+"/",
			http.FileServer(http.Dir("./"+domain.ImagesBaseDir))))

	// Set up middleware that needs to run on every request.
	if len(csrfKey) > 0 {
		csrfMw := csrf.Protect(csrfKey, csrf.Secure(isProd), csrf.Path("/"))
		s.router.Use(csrfMw)
	}
	s.router.Use(setContentTypeJSON, s.authUser)
	return s
}

// ServeHTTP makes the server itself an http.Handler, delegating to the router.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// The setContentTypeJSON middleware sets the content type to "application/json".
func setContentTypeJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

// Run starts to listen and serve on the specified port.
func (s *Server) Run(port int) {
	log.Fatal(http.ListenAndServe("localhost:"+strconv.Itoa(port), s.router))
}
