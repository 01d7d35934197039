package wire

import (
	"Keystone/internal/api"
	"Keystone/internal/api/handler"
	"Keystone/internal/job"
	"Keystone/internal/pkg/cron"
	"Keystone/internal/repository"
	"Keystone/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router  *gin.Engine
	CronMgr *cron.Manager
}

func BuildApplication(db *mongo.Database) (*ApplicationContainer, error) {
	postRepo := repository.NewPostRepo(db)
	commentRepo := repository.NewCommentRepo(db)
	reactionRepo := repository.NewReactionRepo(db)
	userRepo := repository.NewUserRepo(db)

	postService := service.NewPostService(postRepo, commentRepo, reactionRepo)
	commentService := service.NewCommentService(commentRepo, postRepo, reactionRepo)
	reactionService := service.NewReactionService(reactionRepo, postRepo, commentRepo)
	authService := service.NewAuthService(userRepo)
	mediaService := service.NewMediaService()
	reconcileService := service.NewReconcileService(postRepo, commentRepo, reactionRepo)

	handlers := &api.HandlersGroup{
		PostHandler:     handler.NewPostHandler(postService),
		CommentHandler:  handler.NewCommentHandler(commentService),
		ReactionHandler: handler.NewReactionHandler(reactionService),
		AuthHandler:     handler.NewAuthHandler(authService),
		MediaHandler:    handler.NewMediaHandler(mediaService),
	}

	router := api.SetupRouter(handlers)

	reconcileJob := job.NewCounterReconcileJob(reconcileService)
	cronMgr := cron.NewCronManager(reconcileJob)

	return &ApplicationContainer{
		Router:  router,
		CronMgr: cronMgr,
	}, nil
}
