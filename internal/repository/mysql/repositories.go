package mysql

import "petshop-backend/internal/repository/interfaces"

var (
	_ interfaces.Transactor            = (*TxManager)(nil)
	_ interfaces.UserRepository        = (*userRepository)(nil)
	_ interfaces.ProductRepository     = (*productRepository)(nil)
	_ interfaces.CartRepository        = (*cartRepository)(nil)
	_ interfaces.WishlistRepository    = (*wishlistRepository)(nil)
	_ interfaces.PaymentCardRepository = (*paymentCardRepository)(nil)
	_ interfaces.OrderRepository       = (*orderRepository)(nil)
	_ interfaces.CommentRepository     = (*commentRepository)(nil)
	_ interfaces.FeedbackRepository    = (*feedbackRepository)(nil)
	_ interfaces.PetRepository         = (*petRepository)(nil)
)
