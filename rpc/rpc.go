package rpc

import (
	"net"
	"net/rpc"

	"github.com/wfunc/bingoserver/logger"
	"github.com/wfunc/bingoserver/models"
	"github.com/wfunc/bingoserver/services"
)

// Server manages the RPC listener.
type Server struct {
	listener net.Listener
	address  string
}

// NewServer creates a new RPC server. Services are registered by the
// caller before Start.
func NewServer(addr string) (*Server, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	return &Server{
		listener: listener,
		address:  addr,
	}, nil
}

// Start begins listening for RPC requests.
func (s *Server) Start() {
	logger.Log.Infof("RPC server listening on %s", s.address)
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if _, ok := err.(*net.OpError); ok {
				logger.Log.Info("RPC server listener closed.")
				return
			}
			logger.Log.Errorf("RPC server accept error: %v", err)
			continue
		}
		go rpc.ServeConn(conn)
	}
}

// Stop closes the RPC listener.
func (s *Server) Stop() {
	if s.listener != nil {
		logger.Log.Info("Stopping RPC server.")
		s.listener.Close()
	}
}

// BingoService exposes room operations to venue tooling over net/rpc.
// Draw and reset go through the same game service as the HTTP routes,
// so subscribers get the same events either way.
type BingoService struct {
	gameService *services.GameService
}

func NewBingoService(gs *services.GameService) *BingoService {
	return &BingoService{gameService: gs}
}

type RoomArgs struct {
	Room string
}

type DrawArgs struct {
	Room   string
	Number int
}

type StateReply struct {
	State models.RoomState
}

type RoomsArgs struct{}

type RoomsReply struct {
	Rooms []string
}

func (bs *BingoService) Rooms(args *RoomsArgs, reply *RoomsReply) error {
	reply.Rooms = bs.gameService.Rooms()
	return nil
}

func (bs *BingoService) Status(args *RoomArgs, reply *StateReply) error {
	reply.State = bs.gameService.Status(args.Room)
	return nil
}

func (bs *BingoService) Draw(args *DrawArgs, reply *StateReply) error {
	state, err := bs.gameService.Draw(args.Room, args.Number)
	if err != nil {
		return err
	}
	reply.State = state
	return nil
}

func (bs *BingoService) Reset(args *RoomArgs, reply *StateReply) error {
	state, err := bs.gameService.Reset(args.Room)
	if err != nil {
		return err
	}
	reply.State = state
	return nil
}
